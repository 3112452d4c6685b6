package transport

import (
	"errors"
	"net/http"

	"atelier-store/internal/catalog"
	"atelier-store/internal/domain"
	"atelier-store/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogHandler serves the public product catalog.
type CatalogHandler struct {
	catalog *catalog.Repository
	logger  *zap.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(repo *catalog.Repository, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: repo, logger: logger}
}

// RegisterRoutes registers the catalog routes.
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
	})
}

// List returns the catalog, optionally filtered by category.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(r.URL.Query().Get("category"))

	products, err := h.catalog.List(category)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidCategory) {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid category")
			return
		}
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Get returns a single product by ID.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.catalog.Find(id)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}
