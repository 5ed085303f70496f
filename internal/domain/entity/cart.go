package entity

import (
	"github.com/shopspring/decimal"
)

// CartItem is a structural copy of a Product taken when it was added to the cart.
// It is not a foreign key: later catalog changes do not reach it.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// NewCartItem copies p into a cart line of quantity one.
func NewCartItem(p Product) CartItem {
	return CartItem{Product: p, Quantity: 1}
}

// LineTotal is price times quantity; a non-positive quantity counts as one.
func (c CartItem) LineTotal() decimal.Decimal {
	qty := c.Quantity
	if qty <= 0 {
		qty = 1
	}

	return c.Price.Mul(decimal.NewFromInt(int64(qty)))
}
