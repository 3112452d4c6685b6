package transport

import (
	"net/http"
	"strconv"

	"atelier-store/internal/cart"
	"atelier-store/internal/catalog"
	"atelier-store/internal/domain"
	"atelier-store/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddItemRequest adds a product to the cart. Size, when given, selects
// a sized variant and always produces its own line item.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size,omitempty" validate:"omitempty,oneof=S M L XL"`
}

// UpdateItemRequest sets the quantity of a line item.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// SetOpenRequest toggles cart drawer visibility.
type SetOpenRequest struct {
	Open bool `json:"open"`
}

// CartResponse is the cart view returned after every operation.
type CartResponse struct {
	Items      []domain.CartLineItem `json:"items"`
	TotalItems int                   `json:"totalItems"`
	TotalPrice float64               `json:"totalPrice"`
	IsOpen     bool                  `json:"isOpen"`
}

// CartHandler exposes the session cart.
type CartHandler struct {
	carts   *cart.Manager
	catalog *catalog.Repository
	logger  *zap.Logger
}

// NewCartHandler creates a CartHandler.
func NewCartHandler(carts *cart.Manager, repo *catalog.Repository, logger *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, catalog: repo, logger: logger}
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.Clear)
		r.Put("/open", h.SetOpen)
		r.Post("/items", h.AddItem)
		r.Put("/items/{index}", h.UpdateItem)
		r.Delete("/items/{index}", h.RemoveItem)
	})
}

func (h *CartHandler) engine(r *http.Request) (*cart.Engine, bool) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		return nil, false
	}
	return h.carts.Engine(r.Context(), sessionID), true
}

func (h *CartHandler) respondWithCart(w http.ResponseWriter, engine *cart.Engine) {
	items := engine.Items()
	if items == nil {
		items = []domain.CartLineItem{}
	}
	middleware.RespondWithJSON(w, http.StatusOK, CartResponse{
		Items:      items,
		TotalItems: engine.TotalItems(),
		TotalPrice: engine.TotalPrice(),
		IsOpen:     engine.IsOpen(),
	})
}

// Get returns the current cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.engine(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing session")
		return
	}
	h.respondWithCart(w, engine)
}

// AddItem adds a catalog product to the cart.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.Find(req.ProductID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}
	if req.Size != "" {
		product.Size = domain.Size(req.Size)
	}

	engine, ok := h.engine(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing session")
		return
	}

	if err := engine.AddToCart(r.Context(), *product); err != nil {
		h.logger.Error("Failed to add to cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add to cart")
		return
	}

	h.respondWithCart(w, engine)
}

// UpdateItem changes a line item's quantity; zero or below removes it.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid index")
		return
	}

	var req UpdateItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	engine, ok := h.engine(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing session")
		return
	}

	if err := engine.UpdateQuantity(r.Context(), index, req.Quantity); err != nil {
		h.logger.Error("Failed to update quantity", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}

	h.respondWithCart(w, engine)
}

// RemoveItem deletes the line item at the given index. An out-of-range
// index leaves the cart unchanged.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid index")
		return
	}

	engine, ok := h.engine(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing session")
		return
	}

	if err := engine.RemoveFromCart(r.Context(), index); err != nil {
		h.logger.Error("Failed to remove from cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}

	h.respondWithCart(w, engine)
}

// Clear empties the cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.engine(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing session")
		return
	}

	if err := engine.Clear(r.Context()); err != nil {
		h.logger.Error("Failed to clear cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	h.respondWithCart(w, engine)
}

// SetOpen toggles the cart drawer visibility flag.
func (h *CartHandler) SetOpen(w http.ResponseWriter, r *http.Request) {
	var req SetOpenRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	engine, ok := h.engine(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing session")
		return
	}

	engine.SetOpen(req.Open)
	h.respondWithCart(w, engine)
}
