package gateway

import (
	"context"
	"errors"
	"time"

	"atelier-store/internal/domain"
)

var (
	ErrMissingRedirectURL   = errors.New("gateway returned no redirect URL")
	ErrUnsupportedCurrency  = errors.New("unsupported currency")
	ErrMissingRequiredField = errors.New("missing required field")
)

// CardSession is the result of creating a card checkout session.
type CardSession struct {
	URL string
}

// AltCardRequest initiates an alternate card payment. Amount is in the
// smallest currency unit.
type AltCardRequest struct {
	Items    []domain.OrderItem
	Amount   int64
	Email    string
	Shipping domain.ShippingAddress
}

// AltCardAuthorization is the result of initiating an alternate card
// payment.
type AltCardAuthorization struct {
	AuthorizationURL string
}

// CryptoTransactionRequest asks the crypto gateway to issue a wallet
// address for a payment.
type CryptoTransactionRequest struct {
	Currency string
	Amount   float64
	Email    string
	Items    []domain.OrderItem
	Shipping domain.ShippingAddress
}

// CryptoTransaction holds the issued wallet address and the reference
// the customer quotes when confirming payment.
type CryptoTransaction struct {
	WalletAddress    string
	PaymentReference string
	Amount           float64
	Currency         string
	Expiry           time.Time
}

// PaymentSentRequest records a customer's claim that a crypto payment
// was sent. It does not confirm on-chain settlement; that happens
// asynchronously and outside this system.
type PaymentSentRequest struct {
	Reference string
	Email     string
	Currency  string
	Amount    float64
	Items     []domain.OrderItem
	Shipping  domain.ShippingAddress
}

// PaymentSentAck acknowledges a recorded payment claim.
type PaymentSentAck struct {
	OrderID string
	Status  domain.OrderStatus
}

// CardGateway creates redirect-based card checkout sessions.
type CardGateway interface {
	CreateSession(ctx context.Context, items []domain.OrderItem) (*CardSession, error)
}

// AltCardGateway initiates redirect-based payments on the alternate
// card processor.
type AltCardGateway interface {
	Initiate(ctx context.Context, req AltCardRequest) (*AltCardAuthorization, error)
}

// CryptoGateway issues wallet addresses and records payment claims.
type CryptoGateway interface {
	CreateTransaction(ctx context.Context, req CryptoTransactionRequest) (*CryptoTransaction, error)
	RecordPaymentSent(ctx context.Context, req PaymentSentRequest) (*PaymentSentAck, error)
}
