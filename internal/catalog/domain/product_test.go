package domain

import "testing"

func TestNormalizeCategory(t *testing.T) {
	cases := map[string]string{
		"":               AllCategories,
		"   ":            AllCategories,
		"ALL":            AllCategories,
		" all ":          AllCategories,
		" electronics ":  "electronics",
		"men's clothing": "men's clothing",
	}

	for in, want := range cases {
		if got := NormalizeCategory(in); got != want {
			t.Fatalf("NormalizeCategory(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestIsAll(t *testing.T) {
	if !IsAll("All") {
		t.Fatal("expected All to select every product")
	}
	if IsAll("jewelery") {
		t.Fatal("expected jewelery to be a concrete category")
	}
}
