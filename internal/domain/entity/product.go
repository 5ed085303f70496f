package entity

import (
	"github.com/shopspring/decimal"
)

// Banner is the promotional tag shown on a product card.
type Banner string

const (
	BannerNone Banner = "none"
	BannerNew  Banner = "new"
	BannerSale Banner = "sale"
	BannerTop  Banner = "top"
)

// Normalize maps empty or unknown tags to BannerNone.
func (b Banner) Normalize() Banner {
	switch b {
	case BannerNew, BannerSale, BannerTop:
		return b
	default:
		return BannerNone
	}
}

// Product is the read-mostly catalog entry mirrored from the API.
type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Banner      Banner          `json:"banner"`
	Description string          `json:"description"`
}

// EntityID implements the collection key.
func (p Product) EntityID() string {
	return p.ID
}

// ProductInput is the admin create/update form.
type ProductInput struct {
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" validate:"required"`
	Image       string          `json:"image"`
	Banner      Banner          `json:"banner" validate:"omitempty,oneof=none new sale top"`
	Description string          `json:"description"`
}
