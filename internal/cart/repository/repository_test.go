package repository

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"storefront_backend/internal/cart/domain"
	catalog "storefront_backend/internal/catalog/domain"
	"storefront_backend/platform/logger"
)

type failingKV struct {
	err error
}

func (f failingKV) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingKV) Set(context.Context, string, []byte) error   { return f.err }

func sampleItems() []domain.CartItem {
	return []domain.CartItem{
		{Product: catalog.Product{ID: 1, Title: "Backpack", Price: 9.99, Image: "https://img.example/1.jpg"}, Quantity: 2},
		{Product: catalog.Product{ID: 2, Title: "Mug", Price: 5, Rating: &catalog.Rating{Rate: 4.5, Count: 3}}, Quantity: 1},
	}
}

func discardLogger() *logger.Logger {
	return logger.NewWithWriter("production", io.Discard)
}

func assertRoundTrip(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()
	adapter := NewAdapter(kv, "s1", discardLogger())

	if got := adapter.Load(ctx); len(got) != 0 {
		t.Fatalf("expected empty cart before first save, got %+v", got)
	}

	adapter.Save(ctx, sampleItems())
	got := NewAdapter(kv, "s1", discardLogger()).Load(ctx)
	if len(got) != 2 || got[0].Quantity != 2 || got[1].Rating == nil || got[1].Rating.Count != 3 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if other := NewAdapter(kv, "s2", discardLogger()).Load(ctx); len(other) != 0 {
		t.Fatalf("expected sessions isolated, got %+v", other)
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	assertRoundTrip(t, NewMemoryKV(time.Hour))
}

func TestFileRoundTrip(t *testing.T) {
	assertRoundTrip(t, NewFileKV(t.TempDir()))
}

func TestRedisRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	assertRoundTrip(t, NewRedisKV(client, time.Hour))

	if ttl := mr.TTL(CartKey("s1")); ttl != time.Hour {
		t.Fatalf("expected ttl of one hour, got %v", ttl)
	}
}

func TestLoadRecoversFromCorruptValue(t *testing.T) {
	var buf bytes.Buffer
	kv := NewMemoryKV(0)
	_ = kv.Set(context.Background(), CartKey("s1"), []byte(`{"not":"a list"`))

	got := NewAdapter(kv, "s1", logger.NewWithWriter("production", &buf)).Load(context.Background())
	if len(got) != 0 {
		t.Fatalf("expected empty cart, got %+v", got)
	}
	if !strings.Contains(buf.String(), "persistence_failure") || !strings.Contains(buf.String(), `"operation":"decode"`) {
		t.Fatalf("expected decode failure logged, got %q", buf.String())
	}
}

func TestLoadNormalizesStoredItems(t *testing.T) {
	kv := NewMemoryKV(0)
	raw := `[{"id":1,"title":"a","price":1,"quantity":1},{"id":2,"title":"b","price":2,"quantity":0},{"id":1,"title":"a","price":1,"quantity":4}]`
	_ = kv.Set(context.Background(), CartKey("s1"), []byte(raw))

	got := NewAdapter(kv, "s1", discardLogger()).Load(context.Background())
	if len(got) != 1 || got[0].ID != 1 || got[0].Quantity != 5 {
		t.Fatalf("expected merged single line, got %+v", got)
	}
}

func TestBackendFailuresAreSwallowed(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewAdapter(failingKV{err: errors.New("quota exceeded")}, "s1", logger.NewWithWriter("production", &buf))

	adapter.Save(context.Background(), sampleItems())
	if got := adapter.Load(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty cart, got %+v", got)
	}
	if strings.Count(buf.String(), "quota exceeded") != 2 {
		t.Fatalf("expected save and load failures logged, got %q", buf.String())
	}
	if !adapter.LoadFailed() {
		t.Fatal("expected backend failure reported by LoadFailed")
	}
}

func TestLoadFailedIgnoresMissingAndCorrupt(t *testing.T) {
	kv := NewMemoryKV(0)
	ctx := context.Background()
	adapter := NewAdapter(kv, "s1", logger.NewWithWriter("production", io.Discard))

	adapter.Load(ctx)
	if adapter.LoadFailed() {
		t.Fatal("missing cart is not a load failure")
	}

	if err := kv.Set(ctx, adapter.Key(), []byte("{not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	adapter.Load(ctx)
	if adapter.LoadFailed() {
		t.Fatal("corrupt cart is not a load failure")
	}
}

func TestNilBackendIsUnavailable(t *testing.T) {
	adapter := NewAdapter(nil, "s1", discardLogger())
	adapter.Save(context.Background(), sampleItems())
	if got := adapter.Load(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty cart, got %+v", got)
	}
}

func TestMemoryKVExpiry(t *testing.T) {
	kv := NewMemoryKV(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return now }

	_ = kv.Set(context.Background(), "k", []byte("v"))
	now = now.Add(59 * time.Second)
	if _, err := kv.Get(context.Background(), "k"); err != nil {
		t.Fatalf("expected live key, got %v", err)
	}

	now = now.Add(time.Second)
	if kv.Purge() != 1 {
		t.Fatal("expected expired key purged")
	}
	if _, err := kv.Get(context.Background(), "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSaveEmptyWritesEmptyList(t *testing.T) {
	kv := NewMemoryKV(0)
	NewAdapter(kv, "s1", discardLogger()).Save(context.Background(), nil)

	raw, err := kv.Get(context.Background(), CartKey("s1"))
	if err != nil || string(raw) != "[]" {
		t.Fatalf("expected [], got %q, %v", raw, err)
	}
}
