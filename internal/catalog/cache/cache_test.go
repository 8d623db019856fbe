package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func waitForStatus[T any](t *testing.T, c *Cache[T], key Key, want Status) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.Peek(key).Status == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("key %s never reached %s, last %s", key, want, c.Peek(key).Status)
}

func TestProductsKeyNormalizesCategory(t *testing.T) {
	if ProductsKey("") != ProductsKey("ALL") || ProductsKey(" all ") != ProductsKey("all") {
		t.Fatal("expected empty and all to share a key")
	}
	if ProductsKey("electronics") == ProductsKey("jewelery") {
		t.Fatal("expected distinct categories to have distinct keys")
	}
	if CategoriesKey() == ProductsKey("all") {
		t.Fatal("expected kinds to be distinct")
	}
}

func TestGetSharesInFlightFetch(t *testing.T) {
	c := New[[]string]()
	key := ProductsKey("electronics")

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) ([]string, error) {
		calls.Add(1)
		<-release
		return []string{"ssd"}, nil
	}

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data, err := c.Get(context.Background(), key, fetch)
			if err != nil {
				t.Errorf("get: %v", err)
			}
			results[i] = data
		}(i)
	}

	waitForStatus(t, c, key, StatusLoading)
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Fatalf("expected exactly one fetch, got %d", calls.Load())
	}
	for i, data := range results {
		if len(data) != 1 || data[0] != "ssd" {
			t.Fatalf("requester %d saw %v", i, data)
		}
	}
}

func TestReadyEntryIsServedWithoutFetch(t *testing.T) {
	c := New[int]()
	key := CategoriesKey()

	if _, err := c.Get(context.Background(), key, func(context.Context) (int, error) { return 4, nil }); err != nil {
		t.Fatalf("first get: %v", err)
	}

	got, err := c.Get(context.Background(), key, func(context.Context) (int, error) {
		t.Fatal("fetch must not run for a ready key")
		return 0, nil
	})
	if err != nil || got != 4 {
		t.Fatalf("expected cached 4, got %d, %v", got, err)
	}
	if c.Peek(key).Status != StatusReady {
		t.Fatalf("expected ready, got %s", c.Peek(key).Status)
	}
}

func TestFailedEntryIsRetriedByNextGet(t *testing.T) {
	c := New[int]()
	key := ProductsKey("jewelery")
	boom := errors.New("boom")

	if _, err := c.Get(context.Background(), key, func(context.Context) (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	entry := c.Peek(key)
	if entry.Status != StatusError || !errors.Is(entry.Err, boom) {
		t.Fatalf("expected error entry, got %+v", entry)
	}

	got, err := c.Get(context.Background(), key, func(context.Context) (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Fatalf("expected retry to succeed, got %d, %v", got, err)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	c := New[string]()
	release := make(chan struct{})

	go func() {
		_, _ = c.Get(context.Background(), ProductsKey("electronics"), func(context.Context) (string, error) {
			<-release
			return "slow", nil
		})
	}()
	waitForStatus(t, c, ProductsKey("electronics"), StatusLoading)

	got, err := c.Get(context.Background(), ProductsKey("jewelery"), func(context.Context) (string, error) { return "fast", nil })
	if err != nil || got != "fast" {
		t.Fatalf("expected independent key to resolve, got %q, %v", got, err)
	}
	if c.Peek(ProductsKey("electronics")).Status != StatusLoading {
		t.Fatal("expected slow key to still be loading")
	}

	close(release)
	waitForStatus(t, c, ProductsKey("electronics"), StatusReady)
	if c.Len() != 2 {
		t.Fatalf("expected 2 keys, got %d", c.Len())
	}
}

func TestCallerCancellationDoesNotCancelFetch(t *testing.T) {
	c := New[string]()
	key := ProductsKey("electronics")
	release := make(chan struct{})
	fetchCtxErr := make(chan error, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.Get(ctx, key, func(fctx context.Context) (string, error) {
			<-release
			fetchCtxErr <- fctx.Err()
			return "ok", nil
		})
		done <- err
	}()

	waitForStatus(t, c, key, StatusLoading)
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected caller to see cancellation, got %v", err)
	}

	close(release)
	if err := <-fetchCtxErr; err != nil {
		t.Fatalf("expected fetch context to stay live, got %v", err)
	}
	waitForStatus(t, c, key, StatusReady)
}

func TestPeekUnknownKeyIsIdle(t *testing.T) {
	c := New[string]()
	if got := c.Peek(ProductsKey("books")).Status; got != StatusIdle {
		t.Fatalf("expected idle, got %s", got)
	}
	if c.Len() != 0 {
		t.Fatal("peek must not create entries")
	}
}
