// Package repository persists cart line items per session.
package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a KV when the key holds no value.
var ErrNotFound = errors.New("key not found")

// KV is the session-scoped storage the cart is persisted into.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// CartKey is the storage key of the cart for sessionID.
func CartKey(sessionID string) string {
	return "session:" + sessionID + ":cart"
}
