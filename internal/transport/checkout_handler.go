package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"atelier-store/internal/checkout"
	"atelier-store/internal/gateway"
	"atelier-store/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SelectMethodRequest picks a payment method.
type SelectMethodRequest struct {
	Method string `json:"method" validate:"required"`
}

// CheckoutHandler drives the checkout flow for the shopper session.
type CheckoutHandler struct {
	checkouts *checkout.Manager
	logger    *zap.Logger
}

// NewCheckoutHandler creates a CheckoutHandler.
func NewCheckoutHandler(checkouts *checkout.Manager, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkouts: checkouts, logger: logger}
}

// RegisterRoutes registers the checkout routes.
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/checkout", func(r chi.Router) {
		r.Get("/", h.State)
		r.Post("/", h.Begin)
		r.Delete("/", h.Cancel)
		r.Put("/method", h.SelectMethod)
		r.Post("/shipping", h.SubmitShipping)
		r.Post("/payment-sent", h.ConfirmPaymentSent)
	})
}

func (h *CheckoutHandler) session(r *http.Request) (*checkout.Session, bool) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		return nil, false
	}
	return h.checkouts.Session(r.Context(), sessionID), true
}

// State returns the current checkout snapshot.
func (h *CheckoutHandler) State(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing session")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, session.State())
}

// Begin starts the checkout flow.
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing session")
		return
	}

	if err := session.Begin(); err != nil {
		h.respondWithCheckoutError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, session.State())
}

// SelectMethod picks the payment method.
func (h *CheckoutHandler) SelectMethod(w http.ResponseWriter, r *http.Request) {
	var req SelectMethodRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, ok := h.session(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing session")
		return
	}

	if err := session.SelectMethod(checkout.PaymentMethod(req.Method)); err != nil {
		h.respondWithCheckoutError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, session.State())
}

// SubmitShipping validates the shipping form and runs the selected
// payment sub-flow.
func (h *CheckoutHandler) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	// Field-level validation happens inside the orchestrator so the
	// state machine owns the rules; only decode errors are rejected
	// here.
	var form checkout.ShippingForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, ok := h.session(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing session")
		return
	}

	result, err := session.SubmitShipping(r.Context(), form)
	if err != nil {
		h.respondWithCheckoutError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// ConfirmPaymentSent completes a crypto checkout on the customer's
// confirmation.
func (h *CheckoutHandler) ConfirmPaymentSent(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing session")
		return
	}

	result, err := session.ConfirmPaymentSent(r.Context())
	if err != nil {
		if result != nil {
			// Completion went through but the cart clear failed; report
			// it without pretending checkout is still open.
			h.logger.Error("Checkout completed with errors", zap.Error(err))
			middleware.RespondWithJSON(w, http.StatusOK, result)
			return
		}
		h.respondWithCheckoutError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// Cancel abandons the checkout flow, leaving the cart untouched.
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing session")
		return
	}

	if err := session.Cancel(); err != nil {
		h.respondWithCheckoutError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, session.State())
}

func (h *CheckoutHandler) respondWithCheckoutError(w http.ResponseWriter, err error) {
	var fieldErrors checkout.FieldErrors
	switch {
	case errors.As(err, &fieldErrors):
		validationErrors := make([]middleware.ValidationError, len(fieldErrors))
		for i, fe := range fieldErrors {
			validationErrors[i] = middleware.ValidationError{Field: fe.Field, Message: fe.Message}
		}
		middleware.RespondWithValidationErrors(w, validationErrors)
	case errors.Is(err, checkout.ErrEmptyCart):
		middleware.RespondWithError(w, http.StatusBadRequest, "cart is empty")
	case errors.Is(err, checkout.ErrInvalidMethod):
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid payment method")
	case errors.Is(err, checkout.ErrBusy):
		middleware.RespondWithError(w, http.StatusConflict, "a checkout action is already in progress")
	case errors.Is(err, checkout.ErrInvalidTransition):
		middleware.RespondWithError(w, http.StatusConflict, "action not allowed in the current checkout step")
	case errors.Is(err, gateway.ErrMissingRedirectURL):
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to initialize payment")
	default:
		h.logger.Error("Checkout action failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, err.Error())
	}
}
