// Package cart provides the shopping cart bounded context module.
package cart

import (
	"context"
	"time"

	"storefront_backend/internal/cart/handler"
	"storefront_backend/internal/cart/ports"
	"storefront_backend/internal/cart/repository"
	"storefront_backend/internal/cart/service"
	apphttp "storefront_backend/internal/http"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/validator"
)

// Module is the cart bounded context module implementing http.Module.
type Module struct {
	handler  *handler.Handler
	sessions *service.Sessions
	kv       repository.KV
	log      *logger.Logger
}

// purger is implemented by backends that expire keys themselves, such as MemoryKV.
type purger interface {
	Purge() int
}

// NewModule creates the cart module persisting every session's cart into kv.
func NewModule(kv repository.KV, products ports.ProductReader, ttl time.Duration, val *validator.Validator, log *logger.Logger) *Module {
	factory := func(sessionID string) service.Persister {
		return repository.NewAdapter(kv, sessionID, log)
	}
	sessions := service.NewSessions(factory, ttl, log)

	return &Module{
		handler:  handler.New(sessions, products, val),
		sessions: sessions,
		kv:       kv,
		log:      log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "cart"
}

// Sessions returns the session registry for external use.
func (m *Module) Sessions() *service.Sessions {
	return m.sessions
}

// StartSweeper drops idle stores every interval until ctx is done. Backends
// that hold expired carts in process memory are purged on the same schedule.
func (m *Module) StartSweeper(ctx context.Context, interval time.Duration) {
	go m.sessions.Run(ctx, interval)

	p, ok := m.kv.(purger)
	if !ok || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := p.Purge(); removed > 0 {
					m.log.Debug("expired carts purged", "removed", removed)
				}
			}
		}
	}()
}

// RegisterRoutes mounts cart routes on the session route group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Session.Group("/cart")
	group.GET("", m.handler.GetCart)
	group.DELETE("", m.handler.ClearCart)
	group.GET("/summary", m.handler.GetSummary)
	group.POST("/items", m.handler.AddItem)
	group.DELETE("/items/:id", m.handler.RemoveItem)
	group.POST("/items/:id/increment", m.handler.IncrementItem)
	group.POST("/items/:id/decrement", m.handler.DecrementItem)
	group.POST("/checkout", m.handler.Checkout)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
