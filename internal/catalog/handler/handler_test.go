package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/catalog/domain"
	"storefront_backend/internal/catalog/service"
	"storefront_backend/internal/catalog/transport"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/validator"
)

type stubRemote struct {
	categoriesErr error
}

func (s stubRemote) FetchCategories(context.Context) ([]string, error) {
	if s.categoriesErr != nil {
		return nil, s.categoriesErr
	}
	return []string{"electronics", "jewelery"}, nil
}

func (s stubRemote) FetchProducts(_ context.Context, category string) ([]domain.Product, error) {
	all := []domain.Product{
		{ID: 5, Title: "Bracelet", Price: 695, Category: "jewelery"},
		{ID: 9, Title: "SSD", Price: 64, Category: "electronics"},
	}
	if category == domain.AllCategories {
		return all, nil
	}
	out := make([]domain.Product, 0)
	for _, p := range all {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func newRouter(remote service.Remote) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(service.New(remote, logger.NewWithWriter("production", io.Discard)), validator.New())

	r := gin.New()
	r.GET("/catalog/categories", h.ListCategories)
	r.GET("/catalog/products", h.ListProducts)
	r.GET("/catalog/products/:id", h.GetProduct)
	r.GET("/catalog/home", h.GetHome)
	r.GET("/catalog/queries", h.GetQueryStatus)
	return r
}

func get(t *testing.T, r *gin.Engine, target string, dst interface{}) int {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	if dst != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
			t.Fatalf("decode %s: %v (%s)", target, err, rec.Body.String())
		}
	}
	return rec.Code
}

func TestListProductsByCategory(t *testing.T) {
	r := newRouter(stubRemote{})

	var resp transport.ProductListResponse
	if code := get(t, r, "/catalog/products?category=electronics", &resp); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp.Category != "electronics" || resp.Total != 1 || resp.Items[0].ID != 9 {
		t.Fatalf("unexpected response %+v", resp)
	}

	var all transport.ProductListResponse
	get(t, r, "/catalog/products", &all)
	if all.Category != domain.AllCategories || all.Total != 2 {
		t.Fatalf("unexpected all response %+v", all)
	}
}

func TestQueryStatusTracksLifecycle(t *testing.T) {
	r := newRouter(stubRemote{})

	var before transport.QueryStatusResponse
	get(t, r, "/catalog/queries?kind=products&category=jewelery", &before)
	if before.Status != "idle" {
		t.Fatalf("expected idle, got %+v", before)
	}

	get(t, r, "/catalog/products?category=jewelery", nil)

	var after transport.QueryStatusResponse
	get(t, r, "/catalog/queries?kind=products&category=jewelery", &after)
	if after.Status != "ready" || after.Count != 1 {
		t.Fatalf("expected ready with one product, got %+v", after)
	}
}

func TestQueryStatusRejectsUnknownKind(t *testing.T) {
	r := newRouter(stubRemote{})
	if code := get(t, r, "/catalog/queries?kind=orders", nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestHomeUnavailableMapsTo503(t *testing.T) {
	r := newRouter(stubRemote{categoriesErr: apperr.Unavailable("catalog unavailable", errors.New("dial"))})

	var body map[string]interface{}
	if code := get(t, r, "/catalog/home", &body); code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
	if body["error"] != "catalog unavailable" {
		t.Fatalf("unexpected body %v", body)
	}

	var state transport.QueryStatusResponse
	get(t, r, "/catalog/queries?kind=categories", &state)
	if state.Status != "error" || state.Error == "" {
		t.Fatalf("expected recorded error, got %+v", state)
	}
}

func TestGetProduct(t *testing.T) {
	r := newRouter(stubRemote{})

	var product domain.Product
	if code := get(t, r, "/catalog/products/5", &product); code != http.StatusOK || product.Title != "Bracelet" {
		t.Fatalf("expected bracelet, got %d %+v", code, product)
	}
	if code := get(t, r, "/catalog/products/77", nil); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if code := get(t, r, "/catalog/products/abc", nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}
