package transport

import (
	"errors"
	"net/http"

	"atelier-store/internal/admin"
	"atelier-store/internal/catalog"
	"atelier-store/internal/domain"
	"atelier-store/internal/middleware"
	"atelier-store/internal/orders"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateProductRequest adds a product to a collection.
type CreateProductRequest struct {
	Title string  `json:"title" validate:"required"`
	Price float64 `json:"price" validate:"required,gt=0"`
	Image string  `json:"image" validate:"required"`
}

// UpdateProductRequest updates an existing product.
type UpdateProductRequest struct {
	ID    string  `json:"id" validate:"required"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// AdminHandler serves the admin panel API: login, session inspection,
// collection CRUD, and order listing.
type AdminHandler struct {
	guard   *admin.Guard
	catalog *catalog.Repository
	orders  *orders.Store
	logger  *zap.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(guard *admin.Guard, repo *catalog.Repository, orderStore *orders.Store, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{guard: guard, catalog: repo, orders: orderStore, logger: logger}
}

// RegisterRoutes registers the admin routes. Everything except login
// and session inspection requires a valid admin token.
func (h *AdminHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/session", h.Session)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/orders", h.ListOrders)
			r.Route("/collections/{collection}", func(r chi.Router) {
				r.Get("/", h.ListProducts)
				r.Post("/", h.CreateProduct)
				r.Put("/", h.UpdateProduct)
				r.Delete("/", h.DeleteProduct)
			})
		})
	})
}

// Login checks the fixed credential pair and issues the admin cookie.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing session")
		return
	}

	token, err := h.guard.Login(r.Context(), sessionID, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidCredentials) {
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.logger.Error("Admin login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.RespondWithJSON(w, http.StatusOK, domain.AdminSession{IsLoggedIn: true, Email: req.Email})
}

// Logout clears the admin session unconditionally.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing session")
		return
	}

	if err := h.guard.Logout(r.Context(), sessionID); err != nil {
		h.logger.Error("Admin logout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "logout failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	middleware.RespondWithJSON(w, http.StatusOK, domain.AdminSession{IsLoggedIn: false})
}

// Session returns the persisted admin session state.
func (h *AdminHandler) Session(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing session")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.guard.Session(r.Context(), sessionID))
}

func (h *AdminHandler) collection(w http.ResponseWriter, r *http.Request) (domain.Category, bool) {
	category := domain.Category(chi.URLParam(r, "collection"))
	if !category.Valid() {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid collection")
		return "", false
	}
	return category, true
}

// ListProducts returns the products of one collection.
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category, ok := h.collection(w, r)
	if !ok {
		return
	}

	products, err := h.catalog.List(category)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// CreateProduct adds a product to a collection.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	category, ok := h.collection(w, r)
	if !ok {
		return
	}

	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.Create(category, req.Title, req.Price, req.Image)
	if err != nil {
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created",
		zap.String("id", product.ID),
		zap.String("collection", string(category)),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct updates a product's title, price, or image.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.collection(w, r); !ok {
		return
	}

	var req UpdateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.Update(req.ID, req.Title, req.Price, req.Image)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to update product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// DeleteProduct removes a product identified by the id query parameter.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.collection(w, r); !ok {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "product ID is required")
		return
	}

	if err := h.catalog.Delete(id); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// ListOrders returns the recorded orders.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.orders.List())
}
