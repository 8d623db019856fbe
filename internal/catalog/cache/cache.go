// Package cache memoizes catalog queries per (kind, category) key.
//
// A key moves from loading to ready or error. Ready entries are served without
// a round trip for the life of the process. Concurrent requests for a key that
// is loading share a single fetch. An entry in error is fetched again by the
// next request for it.
package cache

import (
	"context"
	"sync"

	"storefront_backend/internal/catalog/domain"

	"golang.org/x/sync/singleflight"
)

// Kind tags what a query returns.
type Kind string

const (
	KindProducts   Kind = "products"
	KindCategories Kind = "categories"
)

// Key identifies one cached query.
type Key struct {
	Kind     Kind
	Category string
}

// ProductsKey keys a products query; the category is normalized so "", "all" and "ALL" share an entry.
func ProductsKey(category string) Key {
	return Key{Kind: KindProducts, Category: domain.NormalizeCategory(category)}
}

// CategoriesKey keys the category list query.
func CategoriesKey() Key {
	return Key{Kind: KindCategories}
}

func (k Key) String() string {
	if k.Category == "" {
		return string(k.Kind)
	}
	return string(k.Kind) + ":" + k.Category
}

// Status is the lifecycle state of a key.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// Entry is a point-in-time view of a key.
type Entry[T any] struct {
	Key    Key
	Status Status
	Data   T
	Err    error
}

// Fetcher performs the remote round trip for a key.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Cache holds query results of one payload type.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[Key]*Entry[T]
	group   singleflight.Group
}

// New creates an empty cache.
func New[T any]() *Cache[T] {
	return &Cache[T]{entries: make(map[Key]*Entry[T])}
}

// Get returns the data for key, running fetch only when no ready entry exists
// and no fetch for key is already in flight.
//
// The fetch is detached from ctx cancellation so that one requester leaving does
// not fail the others; ctx only bounds how long this caller waits.
func (c *Cache[T]) Get(ctx context.Context, key Key, fetch Fetcher[T]) (T, error) {
	var zero T

	if data, ok := c.ready(key); ok {
		return data, nil
	}

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key.String(), func() (interface{}, error) {
		if data, ok := c.ready(key); ok {
			return data, nil
		}

		c.begin(key)
		data, err := fetch(detached)
		c.resolve(key, data, err)
		return data, err
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Peek reports the state of key without fetching.
func (c *Cache[T]) Peek(key Key) Entry[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return Entry[T]{Key: key, Status: StatusIdle}
	}
	return *entry
}

// Len returns the number of keys ever queried.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[T]) ready(key Key) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || entry.Status != StatusReady {
		var zero T
		return zero, false
	}
	return entry.Data, true
}

func (c *Cache[T]) begin(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &Entry[T]{Key: key, Status: StatusLoading}
}

func (c *Cache[T]) resolve(key Key, data T, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.entries[key] = &Entry[T]{Key: key, Status: StatusError, Err: err}
		return
	}
	c.entries[key] = &Entry[T]{Key: key, Status: StatusReady, Data: data}
}
