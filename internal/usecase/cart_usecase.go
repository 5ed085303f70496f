package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// CartUsecase holds the shopping cart, mirrored to the key-value store.
type CartUsecase interface {
	// Load rehydrates the cart from the store. A missing or unreadable value yields an empty cart.
	Load(ctx context.Context) []entity.CartItem

	// Add appends a copy of p. Duplicates are kept as separate lines.
	Add(ctx context.Context, p entity.Product) []entity.CartItem

	// Remove drops every line whose product id matches.
	Remove(ctx context.Context, productID string) []entity.CartItem

	// Checkout submits the order. With no items in input the cart contents are used.
	// On success only the in-memory cart is cleared; the persisted copy stays until the next write.
	Checkout(ctx context.Context, session *entity.Session, input *entity.CheckoutInput) (*entity.Order, error)

	// OnOrderPlaced sets the function called after each successful checkout. Nil unsets it.
	OnOrderPlaced(fn func(*entity.Order))

	Items() []entity.CartItem
	Count() int
	Subtotal() decimal.Decimal
	Total(shippingFee decimal.Decimal) decimal.Decimal
}
