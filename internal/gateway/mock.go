package gateway

import (
	"context"
	"fmt"
	"time"

	"atelier-store/internal/domain"
	"atelier-store/internal/orders"

	"go.uber.org/zap"
)

// Wallet addresses the mock crypto gateway hands out per currency.
var walletAddresses = map[string]string{
	"bitcoin":  "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa",
	"ethereum": "0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
	"usdt":     "TXk3mfDvkBdLJrKxqW9YmZ6FqzGkfAz5hB",
}

// SupportedCurrency reports whether the mock crypto gateway can issue
// a wallet address for the currency.
func SupportedCurrency(currency string) bool {
	_, ok := walletAddresses[currency]
	return ok
}

// MockCardGateway simulates the redirect-card processor: every session
// resolves to a fixed checkout URL.
type MockCardGateway struct {
	CheckoutURL string
}

func (g *MockCardGateway) CreateSession(ctx context.Context, items []domain.OrderItem) (*CardSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.CheckoutURL == "" {
		return nil, ErrMissingRedirectURL
	}
	return &CardSession{URL: g.CheckoutURL}, nil
}

// MockAltCardGateway simulates the alternate card processor.
type MockAltCardGateway struct {
	AuthorizationURL string
}

func (g *MockAltCardGateway) Initiate(ctx context.Context, req AltCardRequest) (*AltCardAuthorization, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Email == "" {
		return nil, fmt.Errorf("%w: email", ErrMissingRequiredField)
	}
	if g.AuthorizationURL == "" {
		return nil, ErrMissingRedirectURL
	}
	return &AltCardAuthorization{AuthorizationURL: g.AuthorizationURL}, nil
}

// MockCryptoGateway issues deterministic wallet addresses and records
// payment claims as pending orders.
type MockCryptoGateway struct {
	Orders *orders.Store
	Logger *zap.Logger

	// Now is swappable for deterministic references in tests.
	Now func() time.Time
}

func (g *MockCryptoGateway) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *MockCryptoGateway) CreateTransaction(ctx context.Context, req CryptoTransactionRequest) (*CryptoTransaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Currency == "" || req.Amount <= 0 {
		return nil, fmt.Errorf("%w: currency and amount", ErrMissingRequiredField)
	}

	address, ok := walletAddresses[req.Currency]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, req.Currency)
	}

	now := g.now()
	return &CryptoTransaction{
		WalletAddress:    address,
		PaymentReference: fmt.Sprintf("CRYPTO-%d", now.UnixMilli()),
		Amount:           req.Amount,
		Currency:         req.Currency,
		Expiry:           now.Add(time.Hour),
	}, nil
}

func (g *MockCryptoGateway) RecordPaymentSent(ctx context.Context, req PaymentSentRequest) (*PaymentSentAck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Reference == "" || req.Email == "" || req.Currency == "" || req.Amount <= 0 {
		return nil, ErrMissingRequiredField
	}

	order := g.Orders.Create(req.Reference, req.Email, req.Currency, req.Amount, req.Items, req.Shipping)

	if g.Logger != nil {
		g.Logger.Info("Crypto payment recorded",
			zap.String("order_id", order.ID),
			zap.String("reference", req.Reference),
			zap.String("currency", req.Currency),
			zap.Float64("amount", req.Amount),
		)
	}

	return &PaymentSentAck{OrderID: order.ID, Status: order.Status}, nil
}
