package repository

import (
	"context"
	"encoding/json"
	"errors"

	"storefront_backend/internal/cart/domain"
	"storefront_backend/platform/logger"
)

// Adapter loads and saves one session's cart. It never returns errors:
// read failures yield an empty cart, write failures are logged and dropped.
type Adapter struct {
	kv         KV
	key        string
	log        *logger.Logger
	loadFailed bool
}

// NewAdapter creates the adapter for sessionID. A nil kv behaves as an
// unavailable backend.
func NewAdapter(kv KV, sessionID string, log *logger.Logger) *Adapter {
	return &Adapter{kv: kv, key: CartKey(sessionID), log: log}
}

// Key returns the storage key used by the adapter.
func (a *Adapter) Key() string {
	return a.key
}

// Load reads the persisted items, normalized to the cart invariants.
func (a *Adapter) Load(ctx context.Context) []domain.CartItem {
	if a.kv == nil {
		return []domain.CartItem{}
	}

	raw, err := a.kv.Get(ctx, a.key)
	a.loadFailed = err != nil && !errors.Is(err, ErrNotFound)
	if errors.Is(err, ErrNotFound) {
		return []domain.CartItem{}
	}
	if err != nil {
		a.log.WithContext(ctx).PersistenceFailure("load", a.key, err)
		return []domain.CartItem{}
	}

	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		a.log.WithContext(ctx).PersistenceFailure("decode", a.key, err)
		return []domain.CartItem{}
	}

	return domain.Normalize(items)
}

// LoadFailed reports whether the last Load could not reach the backend.
// A value that was read but could not be decoded does not count.
func (a *Adapter) LoadFailed() bool {
	return a.loadFailed
}

// Save overwrites the persisted items with items.
func (a *Adapter) Save(ctx context.Context, items []domain.CartItem) {
	if a.kv == nil {
		return
	}
	if items == nil {
		items = []domain.CartItem{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		a.log.WithContext(ctx).PersistenceFailure("encode", a.key, err)
		return
	}

	if err := a.kv.Set(ctx, a.key, raw); err != nil {
		a.log.WithContext(ctx).PersistenceFailure("save", a.key, err)
	}
}
