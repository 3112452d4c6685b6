package checkout

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Step identifies where a checkout session is in the flow.
type Step string

const (
	StepIdle                Step = "idle"
	StepMethodSelect        Step = "method_select"
	StepShippingDetails     Step = "shipping_details"
	StepRedirectPending     Step = "redirect_pending"
	StepCryptoAddressIssued Step = "crypto_address_issued"
	StepCompleted           Step = "completed"
)

// PaymentMethod is the fixed set of payment options.
type PaymentMethod string

const (
	MethodStripe   PaymentMethod = "stripe"
	MethodPaystack PaymentMethod = "paystack"
	MethodCrypto   PaymentMethod = "crypto"
)

// Valid reports whether the method is one of the fixed options.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodStripe, MethodPaystack, MethodCrypto:
		return true
	}
	return false
}

var (
	ErrEmptyCart         = errors.New("cannot start checkout with an empty cart")
	ErrInvalidTransition = errors.New("invalid checkout transition")
	ErrInvalidMethod     = errors.New("invalid payment method")
	ErrBusy              = errors.New("a checkout action is already in flight")
)

// ShippingForm carries the shipping details the customer submits.
// Currency is only consulted for the crypto method.
type ShippingForm struct {
	FullName   string `json:"fullName" validate:"required,min=3"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address" validate:"required,min=5"`
	City       string `json:"city" validate:"required,min=2"`
	State      string `json:"state" validate:"required,min=2"`
	PostalCode string `json:"postalCode" validate:"required,min=4"`
	Country    string `json:"country" validate:"required,min=2"`
	Currency   string `json:"currency,omitempty"`
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is the non-fatal validation outcome: the session stays in
// place and the caller renders these inline.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	fields := make([]string, len(e))
	for i, fe := range e {
		fields[i] = fe.Field
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

// CryptoDetails is the issued-wallet state held while waiting for the
// customer to confirm payment.
type CryptoDetails struct {
	WalletAddress    string    `json:"walletAddress"`
	Currency         string    `json:"currency"`
	PaymentReference string    `json:"paymentReference"`
	Amount           float64   `json:"amount"`
	Expiry           time.Time `json:"expiry"`
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	// Surface errors under the JSON field names the client submitted.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateShippingForm(form ShippingForm) FieldErrors {
	err := formValidator.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrors FieldErrors
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fe := range validationErrors {
			fieldErrors = append(fieldErrors, FieldError{
				Field:   fe.Field(),
				Message: messageFor(fe),
			})
		}
		return fieldErrors
	}

	return FieldErrors{{Field: "form", Message: "invalid form"}}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email address"
	case "min":
		return "Too short (minimum " + fe.Param() + " characters)"
	default:
		return "Invalid value"
	}
}
