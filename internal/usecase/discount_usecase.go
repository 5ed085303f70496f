package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/usecase/slice"

	"github.com/shopspring/decimal"
)

// DiscountUsecase manages promotional codes.
type DiscountUsecase interface {
	FetchDiscounts(ctx context.Context, session *entity.Session) ([]entity.Discount, error)
	FetchDiscount(ctx context.Context, session *entity.Session, id string) (*entity.Discount, error)

	// CreateDiscount validates input before any request. On success a customer
	// session stages a discount notification; an admin session publishes a push instead.
	CreateDiscount(ctx context.Context, session *entity.Session, input *entity.DiscountInput) (*entity.Discount, error)
	UpdateDiscount(ctx context.Context, session *entity.Session, id string, input *entity.DiscountInput) (*entity.Discount, error)
	DeleteDiscount(ctx context.Context, session *entity.Session, id string) error

	// Apply reduces amount by the cached discount matching code.
	Apply(code string, amount decimal.Decimal) (decimal.Decimal, *entity.Discount, error)
	// QRCode renders the code of a cached discount as PNG.
	QRCode(id string) ([]byte, error)

	Discounts() []entity.Discount
	Selected() (entity.Discount, bool)
	Status() slice.Status
}
