package domain

import "time"

// OrderStatus tracks settlement progress of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
)

// OrderItem captures one purchased line at the moment of checkout.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
}

// ShippingAddress is the address snapshot captured during checkout.
type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Order is the record constructed after a completed checkout. The
// checkout flow only supplies the data; ownership lives downstream.
type Order struct {
	ID              string          `json:"id"`
	Reference       string          `json:"reference,omitempty"`
	Email           string          `json:"email"`
	Items           []OrderItem     `json:"items"`
	TotalPrice      float64         `json:"totalPrice"`
	Currency        string          `json:"currency,omitempty"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}
