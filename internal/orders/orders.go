package orders

import (
	"fmt"
	"sync"
	"time"

	"atelier-store/internal/domain"
)

// Store keeps completed orders in memory. Server-side order
// persistence is out of scope; this is the downstream collaborator the
// checkout flow hands its data to.
type Store struct {
	mu     sync.RWMutex
	orders []domain.Order
	now    func() time.Time
}

// NewStore creates an empty order store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Create builds an order from a recorded payment and appends it.
func (s *Store) Create(reference, email, currency string, amount float64, items []domain.OrderItem, shipping domain.ShippingAddress) domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	order := domain.Order{
		ID:              fmt.Sprintf("ORDER-%d", now.UnixMilli()),
		Reference:       reference,
		Email:           email,
		Items:           items,
		TotalPrice:      amount,
		Currency:        currency,
		Status:          domain.OrderStatusPending,
		CreatedAt:       now,
		ShippingAddress: shipping,
	}
	s.orders = append(s.orders, order)
	return order
}

// List returns all orders, newest last.
func (s *Store) List() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]domain.Order, len(s.orders))
	copy(orders, s.orders)
	return orders
}
