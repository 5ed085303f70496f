package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Discount is a promotional code.
type Discount struct {
	ID         string    `json:"_id"`
	Code       string    `json:"code"`
	Percentage int       `json:"percentage"`
	ExpiresAt  time.Time `json:"expiryDate"`
	Active     bool      `json:"isActive"`
}

// EntityID implements the collection key.
func (d Discount) EntityID() string {
	return d.ID
}

// Redeemable reports whether the code can be applied at now.
func (d Discount) Redeemable(now time.Time) bool {
	return d.Active && now.Before(d.ExpiresAt)
}

// Apply returns amount reduced by the discount percentage, rounded to cents.
func (d Discount) Apply(amount decimal.Decimal) decimal.Decimal {
	off := amount.Mul(decimal.NewFromInt(int64(d.Percentage))).Div(decimal.NewFromInt(100))

	return amount.Sub(off).Round(2)
}

// NormalizeCode trims and upper-cases a discount code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DiscountInput is the admin create/update form.
type DiscountInput struct {
	Code       string    `json:"code" validate:"required"`
	Percentage int       `json:"percentage" validate:"min=1,max=100"`
	ExpiresAt  time.Time `json:"expiryDate" validate:"required"`
	Active     *bool     `json:"isActive,omitempty"`
}
