package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"atelier-store/internal/domain"
	"atelier-store/internal/gateway"
	"atelier-store/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PaymentHandler exposes the mock payment gateway endpoints with the
// storefront's original wire shapes. The checkout flow calls the
// gateways in-process; these routes exist for clients integrating at
// the HTTP boundary.
type PaymentHandler struct {
	card    gateway.CardGateway
	altCard gateway.AltCardGateway
	crypto  gateway.CryptoGateway
	logger  *zap.Logger
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(card gateway.CardGateway, altCard gateway.AltCardGateway, crypto gateway.CryptoGateway, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{card: card, altCard: altCard, crypto: crypto, logger: logger}
}

// RegisterRoutes registers the gateway routes.
func (h *PaymentHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/stripe/create-session", h.CreateCardSession)
	r.Post("/api/paystack/initiate", h.InitiateAltCardPayment)
	r.Post("/api/crypto/create-transaction", h.CreateCryptoTransaction)
	r.Post("/api/crypto/payment-sent", h.RecordCryptoPaymentSent)
}

type createCardSessionRequest struct {
	Items []domain.CartLineItem `json:"items"`
}

// CreateCardSession creates a card checkout session and returns its
// redirect URL.
func (h *PaymentHandler) CreateCardSession(w http.ResponseWriter, r *http.Request) {
	var req createCardSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondWithJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	session, err := h.card.CreateSession(r.Context(), domain.ItemizeCart(req.Items))
	if err != nil {
		h.logger.Error("Card session creation failed", zap.Error(err))
		middleware.RespondWithJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create checkout session"})
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"url": session.URL})
}

type initiateAltCardRequest struct {
	Items    []domain.CartLineItem `json:"items"`
	Amount   int64                 `json:"amount"`
	Email    string                `json:"email"`
	Metadata struct {
		ShippingAddress domain.ShippingAddress `json:"shipping_address"`
	} `json:"metadata"`
}

// InitiateAltCardPayment initiates a payment on the alternate card
// processor and returns its authorization URL.
func (h *PaymentHandler) InitiateAltCardPayment(w http.ResponseWriter, r *http.Request) {
	var req initiateAltCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondWithJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	auth, err := h.altCard.Initiate(r.Context(), gateway.AltCardRequest{
		Items:    domain.ItemizeCart(req.Items),
		Amount:   req.Amount,
		Email:    req.Email,
		Shipping: req.Metadata.ShippingAddress,
	})
	if err != nil {
		h.logger.Error("Alt card initiation failed", zap.Error(err))
		middleware.RespondWithJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to initialize transaction"})
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"authorization_url": auth.AuthorizationURL})
}

type createCryptoTransactionRequest struct {
	Currency        string                 `json:"currency"`
	Amount          float64                `json:"amount"`
	Email           string                 `json:"email"`
	Items           []domain.OrderItem     `json:"items"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
}

type cryptoTransactionResponse struct {
	Success          bool    `json:"success"`
	PaymentReference string  `json:"payment_reference"`
	WalletAddress    string  `json:"wallet_address"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
	Expiry           string  `json:"expiry"`
}

type cryptoErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// CreateCryptoTransaction issues a wallet address for a crypto payment.
func (h *PaymentHandler) CreateCryptoTransaction(w http.ResponseWriter, r *http.Request) {
	var req createCryptoTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondWithJSON(w, http.StatusBadRequest, cryptoErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Currency == "" || req.Amount <= 0 {
		middleware.RespondWithJSON(w, http.StatusBadRequest, cryptoErrorResponse{Error: "Currency and amount are required"})
		return
	}

	tx, err := h.crypto.CreateTransaction(r.Context(), gateway.CryptoTransactionRequest{
		Currency: req.Currency,
		Amount:   req.Amount,
		Email:    req.Email,
		Items:    req.Items,
		Shipping: req.ShippingAddress,
	})
	if err != nil {
		if errors.Is(err, gateway.ErrUnsupportedCurrency) {
			middleware.RespondWithJSON(w, http.StatusBadRequest, cryptoErrorResponse{Error: "Unsupported currency"})
			return
		}
		h.logger.Error("Crypto transaction creation failed", zap.Error(err))
		middleware.RespondWithJSON(w, http.StatusInternalServerError, cryptoErrorResponse{Error: "Failed to create crypto transaction"})
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cryptoTransactionResponse{
		Success:          true,
		PaymentReference: tx.PaymentReference,
		WalletAddress:    tx.WalletAddress,
		Amount:           tx.Amount,
		Currency:         tx.Currency,
		Expiry:           tx.Expiry.UTC().Format(time.RFC3339),
	})
}

type paymentSentRequest struct {
	Reference       string                 `json:"reference"`
	Email           string                 `json:"email"`
	Currency        string                 `json:"currency"`
	Amount          float64                `json:"amount"`
	Items           []domain.OrderItem     `json:"items"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
}

type paymentSentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// RecordCryptoPaymentSent records a customer's claim that payment was
// sent and creates a pending order.
func (h *PaymentHandler) RecordCryptoPaymentSent(w http.ResponseWriter, r *http.Request) {
	var req paymentSentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondWithJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if req.Reference == "" || req.Email == "" || req.Currency == "" || req.Amount <= 0 || len(req.Items) == 0 {
		middleware.RespondWithJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
		return
	}

	ack, err := h.crypto.RecordPaymentSent(r.Context(), gateway.PaymentSentRequest{
		Reference: req.Reference,
		Email:     req.Email,
		Currency:  req.Currency,
		Amount:    req.Amount,
		Items:     req.Items,
		Shipping:  req.ShippingAddress,
	})
	if err != nil {
		h.logger.Error("Failed to record crypto payment", zap.Error(err))
		middleware.RespondWithJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to record payment"})
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, paymentSentResponse{
		Success: true,
		Message: "Payment recorded successfully",
		OrderID: ack.OrderID,
		Status:  string(ack.Status),
	})
}
