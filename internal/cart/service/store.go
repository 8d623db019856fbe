package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront_backend/internal/cart/domain"
	catalog "storefront_backend/internal/catalog/domain"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/logger"
)

// Persister is the storage contract the store writes through.
// Implementations recover their own failures.
type Persister interface {
	Load(ctx context.Context) []domain.CartItem
	Save(ctx context.Context, items []domain.CartItem)
}

// Store owns one shopper's cart. Operations are serialized; each one computes
// the next state, saves it, and returns a snapshot of it.
type Store struct {
	mu       sync.Mutex
	state    domain.State
	persist  Persister
	log      *logger.Logger
	now      func() time.Time
	lastUsed time.Time
}

// NewStore creates a store seeded from the persisted cart.
func NewStore(ctx context.Context, persist Persister, log *logger.Logger) *Store {
	s := &Store{
		persist: persist,
		log:     log,
		now:     time.Now,
	}
	s.state = domain.NewState(persist.Load(ctx))
	s.lastUsed = s.now()
	return s
}

// State returns a snapshot of the current cart.
func (s *Store) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUsed = s.now()
	return s.state.Clone()
}

// AddToCart adds one unit of product.
func (s *Store) AddToCart(ctx context.Context, product catalog.Product) domain.State {
	return s.apply(ctx, func(st domain.State) domain.State { return st.Add(product) })
}

// RemoveFromCart deletes the line for id.
func (s *Store) RemoveFromCart(ctx context.Context, id int64) domain.State {
	return s.apply(ctx, func(st domain.State) domain.State { return st.Remove(id) })
}

// IncrementQuantity adds one unit to the line for id.
func (s *Store) IncrementQuantity(ctx context.Context, id int64) domain.State {
	return s.apply(ctx, func(st domain.State) domain.State { return st.Increment(id) })
}

// DecrementQuantity removes one unit from the line for id, dropping the line at zero.
func (s *Store) DecrementQuantity(ctx context.Context, id int64) domain.State {
	return s.apply(ctx, func(st domain.State) domain.State { return st.Decrement(id) })
}

// ClearCart empties the cart.
func (s *Store) ClearCart(ctx context.Context) domain.State {
	return s.apply(ctx, func(st domain.State) domain.State { return st.Clear() })
}

// Checkout places the current cart as an order and empties it.
func (s *Store) Checkout(ctx context.Context) (domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUsed = s.now()
	if s.state.IsEmpty() {
		return domain.Receipt{}, apperr.Validation("cart is empty").WithOp("cart.Checkout")
	}

	receipt := domain.NewReceipt(uuid.NewString(), s.state, s.now().UTC())
	s.commit(ctx, s.state.Clear())

	s.log.WithContext(ctx).Info("order placed",
		"order_id", receipt.OrderID,
		"lines", len(receipt.Items),
		"total_quantity", receipt.TotalQuantity,
		"total_price", receipt.TotalPrice.StringFixed(2),
	)
	return receipt, nil
}

// touch marks the store as used now.
func (s *Store) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = s.now()
}

// idleSince reports when the store was last touched.
func (s *Store) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Store) apply(ctx context.Context, transition func(domain.State) domain.State) domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUsed = s.now()
	s.commit(ctx, transition(s.state))
	return s.state.Clone()
}

// commit installs next and writes it through. Callers hold mu.
func (s *Store) commit(ctx context.Context, next domain.State) {
	s.state = next
	s.persist.Save(ctx, next.Clone().Items)
}
