package catalog

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"atelier-store/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidCategory = errors.New("invalid category")
)

// Repository holds the product catalog in memory. Entries are seeded at
// construction time and only change through the admin CRUD operations.
type Repository struct {
	mu       sync.RWMutex
	products []domain.Product
	now      func() time.Time
}

// NewRepository creates a catalog seeded with the given products.
func NewRepository(seed []domain.Product) *Repository {
	products := make([]domain.Product, len(seed))
	copy(products, seed)
	return &Repository{
		products: products,
		now:      time.Now,
	}
}

// List returns products, optionally filtered by category. An empty
// category returns the full catalog.
func (r *Repository) List(category domain.Category) ([]domain.Product, error) {
	if category != "" && !category.Valid() {
		return nil, ErrInvalidCategory
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if category == "" || p.Category == category {
			result = append(result, p)
		}
	}
	return result, nil
}

// Find retrieves a product by ID.
func (r *Repository) Find(id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

// Create adds a new product to the given collection and returns it with
// a generated identifier.
func (r *Repository) Create(category domain.Category, title string, price float64, image string) (*domain.Product, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	product := domain.Product{
		ID:       fmt.Sprintf("%s-%d", category, r.now().UnixMilli()),
		Title:    title,
		Price:    price,
		Image:    image,
		Category: category,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = append(r.products, product)

	return &product, nil
}

// Update replaces the mutable attributes of an existing product.
func (r *Repository) Update(id, title string, price float64, image string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID == id {
			if title != "" {
				r.products[i].Title = title
			}
			if price > 0 {
				r.products[i].Price = price
			}
			if image != "" {
				r.products[i].Image = image
			}
			product := r.products[i]
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

// Delete removes a product from the catalog.
func (r *Repository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}
