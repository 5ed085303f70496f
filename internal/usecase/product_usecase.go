package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/usecase/slice"
)

// ProductUsecase mirrors the remote catalog.
type ProductUsecase interface {
	FetchProducts(ctx context.Context) ([]entity.Product, error)
	FetchProduct(ctx context.Context, id string) (*entity.Product, error)
	CreateProduct(ctx context.Context, session *entity.Session, input *entity.ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, session *entity.Session, id string, input *entity.ProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, session *entity.Session, id string) error

	// Products returns the cached catalog.
	Products() []entity.Product
	// Selected returns the product last fetched by id.
	Selected() (entity.Product, bool)
	// ByCategory filters the cached catalog by exact category.
	ByCategory(category string) []entity.Product
	// ByBanner filters the cached catalog by banner tag.
	ByBanner(banner entity.Banner) []entity.Product
	// Search matches product names case-insensitively.
	Search(query string) []entity.Product
	// Categories lists the distinct categories in catalog order.
	Categories() []string
	Status() slice.Status
}
