package service

import (
	"context"
	"sync"
	"time"

	"storefront_backend/platform/logger"
)

// PersisterFactory returns the persistence for one session.
type PersisterFactory func(sessionID string) Persister

// LoadReporter is implemented by persisters that can tell a failed read from
// an empty cart.
type LoadReporter interface {
	LoadFailed() bool
}

// Sessions keeps one Store per session id. Stores idle for longer than ttl are
// dropped from memory; their persisted cart is reloaded on the next request.
type Sessions struct {
	mu      sync.Mutex
	stores  map[string]*Store
	factory PersisterFactory
	ttl     time.Duration
	log     *logger.Logger
	now     func() time.Time
}

// NewSessions creates an empty registry.
func NewSessions(factory PersisterFactory, ttl time.Duration, log *logger.Logger) *Sessions {
	return &Sessions{
		stores:  make(map[string]*Store),
		factory: factory,
		ttl:     ttl,
		log:     log,
		now:     time.Now,
	}
}

// Store returns the store for sessionID, loading it on first use. The load is
// not bound to ctx cancellation. A store whose load could not reach the backend
// is handed out but not kept, so the next call reads the backend again.
func (r *Sessions) Store(ctx context.Context, sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if store, ok := r.stores[sessionID]; ok {
		store.touch()
		return store
	}

	persist := r.factory(sessionID)
	store := NewStore(context.WithoutCancel(ctx), persist, r.log)
	store.now = r.now
	store.lastUsed = r.now()

	if rep, ok := persist.(LoadReporter); ok && rep.LoadFailed() {
		r.log.WithSessionID(sessionID).Warn("cart load failed; session store not retained")
		return store
	}
	r.stores[sessionID] = store
	return store
}

// Len returns the number of live stores.
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// Sweep drops stores idle for longer than ttl and returns how many were dropped.
func (r *Sessions) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, store := range r.stores {
		if store.idleSince().Before(cutoff) {
			delete(r.stores, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Sessions) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := r.Sweep(); removed > 0 {
				r.log.Debug("idle cart sessions swept", "removed", removed, "remaining", r.Len())
			}
		}
	}
}
