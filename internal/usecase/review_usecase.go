package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/usecase/slice"
)

// ReviewUsecase manages product reviews. Only the author may change or remove one.
type ReviewUsecase interface {
	// FetchReviews loads reviews, scoped to productID when it is not empty.
	FetchReviews(ctx context.Context, productID string) ([]entity.Review, error)
	FetchReview(ctx context.Context, id string) (*entity.Review, error)
	CreateReview(ctx context.Context, session *entity.Session, input *entity.ReviewInput) (*entity.Review, error)
	UpdateReview(ctx context.Context, session *entity.Session, id string, update *entity.ReviewUpdate) (*entity.Review, error)
	DeleteReview(ctx context.Context, session *entity.Session, id string) error

	Reviews() []entity.Review
	Selected() (entity.Review, bool)
	Status() slice.Status
}
