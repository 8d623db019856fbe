package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusByKind(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{NotFound("missing"), http.StatusNotFound},
		{Validation("bad"), http.StatusBadRequest},
		{BadRequest("bad"), http.StatusBadRequest},
		{Conflict("dup"), http.StatusConflict},
		{Internal("boom"), http.StatusInternalServerError},
		{Unavailable("down", errors.New("status 500")), http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.err.Kind, tc.want, got)
		}
	}
}

func TestGetKindFollowsWrappedErrors(t *testing.T) {
	base := Unavailable("catalog unavailable", errors.New("dial tcp: refused")).WithOp("catalog.FetchProducts")
	wrapped := fmt.Errorf("home query: %w", base)

	if !Is(wrapped, KindUnavailable) {
		t.Fatalf("expected wrapped error to keep KindUnavailable, got %s", GetKind(wrapped))
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Fatal("expected KindUnknown for untyped error")
	}
}

func TestErrorMessageIncludesOpAndCause(t *testing.T) {
	err := Unavailable("catalog unavailable", errors.New("status 502")).WithOp("catalog.FetchCategories")
	want := "catalog.FetchCategories: catalog unavailable: status 502"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
