package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"atelier-store/internal/domain"
	"atelier-store/internal/store"

	"go.uber.org/zap"
)

// Engine owns the cart line-item sequence for one shopper session. It
// rehydrates the sequence from the durable store once at construction
// and writes the full snapshot back on every mutation. Derived totals
// are recomputed inside each mutation, never cached independently.
type Engine struct {
	mu         sync.Mutex
	items      []domain.CartLineItem
	totalItems int
	totalPrice float64
	open       bool

	store  store.Store
	key    string
	logger *zap.Logger
}

// NewEngine creates a cart engine for the given session key, seeding it
// from a prior snapshot if one exists. A missing or corrupt snapshot is
// treated as an empty cart; corruption is logged, never surfaced.
func NewEngine(ctx context.Context, st store.Store, key string, logger *zap.Logger) *Engine {
	e := &Engine{
		store:  st,
		key:    key,
		logger: logger,
	}

	snapshot, err := st.Get(ctx, key)
	if err != nil {
		if err != store.ErrNotFound {
			logger.Warn("Failed to read cart snapshot, starting empty",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return e
	}

	var items []domain.CartLineItem
	if err := json.Unmarshal(snapshot, &items); err != nil {
		logger.Warn("Corrupt cart snapshot, starting empty",
			zap.String("key", key),
			zap.Error(err),
		)
		return e
	}

	// Drop lines a buggy or tampered snapshot may carry with an
	// impossible quantity.
	for _, item := range items {
		if item.Quantity >= 1 {
			e.items = append(e.items, item)
		}
	}
	e.recompute()

	return e
}

// AddToCart appends or merges a product into the cart. Products with a
// size always get their own line; size-less products merge into an
// existing size-less line with the same ID.
func (e *Engine) AddToCart(ctx context.Context, product domain.Product) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.copyItems()

	if product.Size == "" {
		for i := range next {
			if next[i].Product.ID == product.ID && next[i].Product.Size == "" {
				next[i].Quantity++
				return e.commit(ctx, next)
			}
		}
	}

	next = append(next, domain.CartLineItem{Product: product, Quantity: 1})
	return e.commit(ctx, next)
}

// RemoveFromCart deletes the line item at the given position. An
// out-of-range index is a silent no-op so the caller stays robust
// against stale indices.
func (e *Engine) RemoveFromCart(ctx context.Context, index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.removeLocked(ctx, index)
}

// UpdateQuantity sets the quantity of the line item at the given
// position. A quantity of zero or below removes the line entirely.
func (e *Engine) UpdateQuantity(ctx context.Context, index, quantity int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if quantity <= 0 {
		return e.removeLocked(ctx, index)
	}

	if index < 0 || index >= len(e.items) {
		return nil
	}

	next := e.copyItems()
	next[index].Quantity = quantity
	return e.commit(ctx, next)
}

// Clear empties the cart unconditionally.
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.commit(ctx, nil)
}

// Items returns a copy of the current line-item sequence.
func (e *Engine) Items() []domain.CartLineItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.copyItems()
}

// TotalItems returns the sum of quantities across all line items.
func (e *Engine) TotalItems() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.totalItems
}

// TotalPrice returns the sum of price times quantity across all line
// items.
func (e *Engine) TotalPrice() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.totalPrice
}

// SetOpen toggles the cart drawer visibility flag. The flag is
// independent of cart contents and never persisted.
func (e *Engine) SetOpen(open bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.open = open
}

// IsOpen reports the cart drawer visibility flag.
func (e *Engine) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.open
}

func (e *Engine) removeLocked(ctx context.Context, index int) error {
	if index < 0 || index >= len(e.items) {
		return nil
	}

	next := e.copyItems()
	next = append(next[:index], next[index+1:]...)
	return e.commit(ctx, next)
}

// commit persists the candidate sequence and, only once the write has
// succeeded, installs it in memory and recomputes totals. A failed
// write leaves the engine on the previous, already-persisted state.
func (e *Engine) commit(ctx context.Context, next []domain.CartLineItem) error {
	snapshot, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}

	if err := e.store.Set(ctx, e.key, snapshot); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}

	e.items = next
	e.recompute()
	return nil
}

func (e *Engine) recompute() {
	totalItems := 0
	totalPrice := 0.0
	for _, item := range e.items {
		totalItems += item.Quantity
		totalPrice += item.Product.Price * float64(item.Quantity)
	}
	e.totalItems = totalItems
	e.totalPrice = totalPrice
}

func (e *Engine) copyItems() []domain.CartLineItem {
	if len(e.items) == 0 {
		return nil
	}
	items := make([]domain.CartLineItem, len(e.items))
	copy(items, e.items)
	return items
}
