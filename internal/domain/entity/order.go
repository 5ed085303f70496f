package entity

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// IsValid checks if the status is one of the known values.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsFinal reports whether no further status change is expected.
func (s OrderStatus) IsFinal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// OrderItem is the line snapshot stored with an order.
type OrderItem struct {
	Product  Ref             `json:"product"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Order is a placed order.
type Order struct {
	ID              string          `json:"_id"`
	User            Ref             `json:"userId"`
	Items           []OrderItem     `json:"items"`
	ShippingFee     decimal.Decimal `json:"shippingFee"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress string          `json:"shippingAddress,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// EntityID implements the collection key.
func (o Order) EntityID() string {
	return o.ID
}

// Quantity accepts a JSON number or a numeric string.
type Quantity int

// UnmarshalJSON coerces "2" and 2 alike. Fractions are rejected.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*q = 0

		return nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid quantity %q", raw)
	}
	if f != float64(int(f)) {
		return errors.Errorf("quantity %q is not a whole number", raw)
	}
	*q = Quantity(int(f))

	return nil
}

// MarshalJSON writes a JSON number.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(q))
}

// CheckoutItem is one line of checkout input as screens send it. Price and
// quantity may arrive as strings and are coerced to numbers before submission.
type CheckoutItem struct {
	ProductID string          `json:"product" validate:"required"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  Quantity        `json:"quantity" validate:"gt=0"`
}

// CheckoutInput is the order data handed to checkout.
type CheckoutInput struct {
	Items           []CheckoutItem   `json:"items" validate:"dive"`
	ShippingFee     *decimal.Decimal `json:"shippingFee,omitempty"`
	ShippingAddress string           `json:"shippingAddress,omitempty"`
}

// OrderStatusUpdate is the body of an administrative status change.
type OrderStatusUpdate struct {
	Status OrderStatus `json:"status" validate:"required,oneof=Pending Shipped Delivered Cancelled"`
}
