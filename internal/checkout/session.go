package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"atelier-store/internal/cart"
	"atelier-store/internal/domain"
	"atelier-store/internal/gateway"

	"go.uber.org/zap"
)

// Gateways bundles the payment backends a checkout session can call.
type Gateways struct {
	Card    gateway.CardGateway
	AltCard gateway.AltCardGateway
	Crypto  gateway.CryptoGateway
}

// Session walks one shopper through checkout:
//
//	Idle -> MethodSelect -> ShippingDetails -> RedirectPending
//	                                        -> CryptoAddressIssued -> Completed
//
// Cancel returns to Idle from any non-idle step, discarding
// checkout-local data but leaving the cart untouched. Session state is
// held in memory only; a restart loses checkout progress, never the
// cart. At most one gateway call is in flight at a time: a second
// advancing action while one is outstanding fails with ErrBusy.
type Session struct {
	mu       sync.Mutex
	step     Step
	method   PaymentMethod
	shipping domain.ShippingAddress
	email    string
	crypto   *CryptoDetails
	busy     bool

	cart     *cart.Engine
	gateways Gateways
	timeout  time.Duration
	logger   *zap.Logger
}

// NewSession creates an idle checkout session bound to a cart engine.
func NewSession(cartEngine *cart.Engine, gateways Gateways, timeout time.Duration, logger *zap.Logger) *Session {
	return &Session{
		step:     StepIdle,
		cart:     cartEngine,
		gateways: gateways,
		timeout:  timeout,
		logger:   logger,
	}
}

// Snapshot is a read-only view of the session for rendering.
type Snapshot struct {
	Step   Step           `json:"step"`
	Method PaymentMethod  `json:"method,omitempty"`
	Crypto *CryptoDetails `json:"crypto,omitempty"`
}

// State returns the current session view.
func (s *Session) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := Snapshot{Step: s.step, Method: s.method}
	if s.crypto != nil {
		c := *s.crypto
		snapshot.Crypto = &c
	}
	return snapshot
}

// Begin starts checkout. An empty cart cannot be checked out.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepIdle {
		return ErrInvalidTransition
	}
	if s.cart.TotalItems() == 0 {
		return ErrEmptyCart
	}

	s.step = StepMethodSelect
	return nil
}

// SelectMethod picks one of the fixed payment methods.
func (s *Session) SelectMethod(method PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepMethodSelect {
		return ErrInvalidTransition
	}
	if !method.Valid() {
		return ErrInvalidMethod
	}

	s.method = method
	s.step = StepShippingDetails
	return nil
}

// SubmitResult is the outcome of a successful shipping submission:
// either a URL the client must navigate to, or issued crypto payment
// details.
type SubmitResult struct {
	RedirectURL string         `json:"redirectUrl,omitempty"`
	Crypto      *CryptoDetails `json:"crypto,omitempty"`
}

// SubmitShipping validates the shipping form and runs the selected
// method's sub-flow. Validation failure returns FieldErrors and leaves
// the session in ShippingDetails; a gateway failure does the same with
// the gateway's error.
func (s *Session) SubmitShipping(ctx context.Context, form ShippingForm) (*SubmitResult, error) {
	s.mu.Lock()
	if s.step != StepShippingDetails {
		s.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}

	if fieldErrors := validateShippingForm(form); fieldErrors != nil {
		s.mu.Unlock()
		return nil, fieldErrors
	}
	if s.method == MethodCrypto && !gateway.SupportedCurrency(form.Currency) {
		s.mu.Unlock()
		return nil, FieldErrors{{Field: "currency", Message: "Unsupported currency"}}
	}

	method := s.method
	shipping := domain.ShippingAddress{
		FullName:   form.FullName,
		Address:    form.Address,
		City:       form.City,
		State:      form.State,
		PostalCode: form.PostalCode,
		Country:    form.Country,
	}
	items := domain.ItemizeCart(s.cart.Items())
	totalPrice := s.cart.TotalPrice()
	s.busy = true
	s.mu.Unlock()

	result, err := s.callGateway(ctx, method, form, shipping, items, totalPrice)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false

	if err != nil {
		// The session stays in ShippingDetails; the cart is untouched.
		s.logger.Warn("Payment gateway call failed",
			zap.String("method", string(method)),
			zap.Error(err),
		)
		return nil, err
	}

	s.shipping = shipping
	s.email = form.Email

	if result.Crypto != nil {
		s.crypto = result.Crypto
		s.step = StepCryptoAddressIssued
	} else {
		// The client navigates away to the redirect URL; completion is
		// never observed for redirect methods, so the session parks in
		// RedirectPending until cancelled.
		s.step = StepRedirectPending
	}

	return result, nil
}

func (s *Session) callGateway(ctx context.Context, method PaymentMethod, form ShippingForm, shipping domain.ShippingAddress, items []domain.OrderItem, totalPrice float64) (*SubmitResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	switch method {
	case MethodStripe:
		session, err := s.gateways.Card.CreateSession(ctx, items)
		if err != nil {
			return nil, fmt.Errorf("card session: %w", err)
		}
		if session.URL == "" {
			return nil, gateway.ErrMissingRedirectURL
		}
		return &SubmitResult{RedirectURL: session.URL}, nil

	case MethodPaystack:
		auth, err := s.gateways.AltCard.Initiate(ctx, gateway.AltCardRequest{
			Items:    items,
			Amount:   int64(totalPrice * 100),
			Email:    form.Email,
			Shipping: shipping,
		})
		if err != nil {
			return nil, fmt.Errorf("alt card payment: %w", err)
		}
		if auth.AuthorizationURL == "" {
			return nil, gateway.ErrMissingRedirectURL
		}
		return &SubmitResult{RedirectURL: auth.AuthorizationURL}, nil

	case MethodCrypto:
		tx, err := s.gateways.Crypto.CreateTransaction(ctx, gateway.CryptoTransactionRequest{
			Currency: form.Currency,
			Amount:   totalPrice,
			Email:    form.Email,
			Items:    items,
			Shipping: shipping,
		})
		if err != nil {
			return nil, fmt.Errorf("crypto transaction: %w", err)
		}
		return &SubmitResult{Crypto: &CryptoDetails{
			WalletAddress:    tx.WalletAddress,
			Currency:         tx.Currency,
			PaymentReference: tx.PaymentReference,
			Amount:           tx.Amount,
			Expiry:           tx.Expiry,
		}}, nil
	}

	return nil, ErrInvalidMethod
}

// CompleteResult reports the outcome of confirming a crypto payment.
// Completion clears the cart even when recording the payment failed;
// RecordingError carries that failure for the caller to surface.
type CompleteResult struct {
	OrderID        string `json:"orderId,omitempty"`
	RecordingError string `json:"recordingError,omitempty"`
}

// ConfirmPaymentSent records the customer's payment claim, clears the
// cart, and returns the session to idle. The cart is cleared on the
// customer's word alone; settlement verification is asynchronous and
// out of scope.
func (s *Session) ConfirmPaymentSent(ctx context.Context) (*CompleteResult, error) {
	s.mu.Lock()
	if s.step != StepCryptoAddressIssued {
		s.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}

	req := gateway.PaymentSentRequest{
		Reference: s.crypto.PaymentReference,
		Email:     s.email,
		Currency:  s.crypto.Currency,
		Amount:    s.crypto.Amount,
		Items:     domain.ItemizeCart(s.cart.Items()),
		Shipping:  s.shipping,
	}
	s.busy = true
	s.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	ack, recordErr := s.gateways.Crypto.RecordPaymentSent(callCtx, req)
	cancel()

	result := &CompleteResult{}
	if recordErr != nil {
		// A recording failure is reported but does not block
		// completion, matching the storefront's behavior.
		s.logger.Error("Failed to record crypto payment",
			zap.String("reference", req.Reference),
			zap.Error(recordErr),
		)
		result.RecordingError = recordErr.Error()
	} else {
		result.OrderID = ack.OrderID
	}

	clearErr := s.cart.Clear(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	s.reset()

	if clearErr != nil {
		return result, fmt.Errorf("failed to clear cart after checkout: %w", clearErr)
	}
	return result, nil
}

// Cancel abandons checkout from any non-idle step, discarding
// checkout-local data. The cart is untouched.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step == StepIdle {
		return ErrInvalidTransition
	}
	if s.busy {
		return ErrBusy
	}

	s.reset()
	return nil
}

func (s *Session) reset() {
	s.step = StepIdle
	s.method = ""
	s.shipping = domain.ShippingAddress{}
	s.email = ""
	s.crypto = nil
}
