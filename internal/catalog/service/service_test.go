package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefront_backend/internal/catalog/cache"
	"storefront_backend/internal/catalog/client"
	"storefront_backend/internal/catalog/domain"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/validator"
)

type fakeRemote struct {
	mu         sync.Mutex
	products   map[string][]domain.Product
	categories []string
	err        error
	calls      map[string]int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		products: map[string][]domain.Product{
			domain.AllCategories: {
				{ID: 1, Title: "Backpack", Price: 109.95, Category: "men's clothing"},
				{ID: 9, Title: "SSD", Price: 64, Category: "electronics"},
			},
			"electronics": {{ID: 9, Title: "SSD", Price: 64, Category: "electronics"}},
		},
		categories: []string{"electronics", "men's clothing"},
		calls:      map[string]int{},
	}
}

func (f *fakeRemote) FetchCategories(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["categories"]++
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func (f *fakeRemote) FetchProducts(ctx context.Context, category string) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["products:"+category]++
	if f.err != nil {
		return nil, f.err
	}
	return f.products[category], nil
}

func (f *fakeRemote) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func testLogger() *logger.Logger {
	return logger.NewWithWriter("production", io.Discard)
}

func TestProductsCachesPerCategory(t *testing.T) {
	remote := newFakeRemote()
	svc := New(remote, testLogger())
	ctx := context.Background()

	for _, category := range []string{"", "all", "ALL"} {
		if _, err := svc.Products(ctx, category); err != nil {
			t.Fatalf("products(%q): %v", category, err)
		}
	}
	if _, err := svc.Products(ctx, "electronics"); err != nil {
		t.Fatalf("products(electronics): %v", err)
	}

	if remote.count("products:all") != 1 {
		t.Fatalf("expected one fetch for all, got %d", remote.count("products:all"))
	}
	if remote.count("products:electronics") != 1 {
		t.Fatalf("expected one fetch for electronics, got %d", remote.count("products:electronics"))
	}
}

func TestConcurrentRequestersShareOneRoundTrip(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_, _ = io.WriteString(w, `[{"id":9,"title":"SSD","price":64,"category":"electronics","image":"https://img.example/9.jpg"}]`)
	}))
	defer srv.Close()

	remote := client.NewWithHTTPClient(srv.URL, srv.Client(), validator.New(), testLogger())
	svc := New(remote, testLogger())

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			products, err := svc.Products(context.Background(), "electronics")
			if err != nil || len(products) != 1 {
				t.Errorf("expected one product, got %v, %v", products, err)
			}
		}()
	}

	deadline := time.Now().Add(2 * time.Second)
	for svc.Status(cache.ProductsKey("electronics")).Status != cache.StatusLoading && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	close(release)
	wg.Wait()

	if hits.Load() != 1 {
		t.Fatalf("expected exactly one network request, got %d", hits.Load())
	}
	if got := svc.Status(cache.ProductsKey("electronics")); got.Status != cache.StatusReady || got.Count != 1 {
		t.Fatalf("expected ready with one product, got %+v", got)
	}
}

func TestFailureIsRecordedAndRetried(t *testing.T) {
	remote := newFakeRemote()
	remote.err = apperr.Unavailable("catalog unavailable", errors.New("dial tcp"))
	svc := New(remote, testLogger())
	ctx := context.Background()

	if _, err := svc.Categories(ctx); !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	state := svc.Status(cache.CategoriesKey())
	if state.Status != cache.StatusError || state.Err == nil {
		t.Fatalf("expected error state, got %+v", state)
	}

	remote.mu.Lock()
	remote.err = nil
	remote.mu.Unlock()

	categories, err := svc.Categories(ctx)
	if err != nil || len(categories) != 2 {
		t.Fatalf("expected retry to succeed, got %v, %v", categories, err)
	}
	if remote.count("categories") != 2 {
		t.Fatalf("expected two fetches, got %d", remote.count("categories"))
	}
}

func TestHomeLoadsBothQueries(t *testing.T) {
	svc := New(newFakeRemote(), testLogger())

	home, err := svc.Home(context.Background(), " electronics ")
	if err != nil {
		t.Fatalf("home: %v", err)
	}
	if home.Category != "electronics" || len(home.Categories) != 2 || len(home.Products) != 1 {
		t.Fatalf("unexpected home %+v", home)
	}
}

func TestStatusIdleBeforeFirstQuery(t *testing.T) {
	svc := New(newFakeRemote(), testLogger())
	if got := svc.Status(cache.ProductsKey("jewelery")).Status; got != cache.StatusIdle {
		t.Fatalf("expected idle, got %s", got)
	}
}

func TestFindProduct(t *testing.T) {
	svc := New(newFakeRemote(), testLogger())
	ctx := context.Background()

	product, err := svc.FindProduct(ctx, 9)
	if err != nil || product.Title != "SSD" {
		t.Fatalf("expected SSD, got %+v, %v", product, err)
	}
	if _, err := svc.FindProduct(ctx, 404); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
