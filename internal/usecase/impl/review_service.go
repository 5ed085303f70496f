package impl

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
	"storefront/internal/usecase/slice"

	"go.uber.org/fx"
)

type reviewService struct {
	reviews *slice.Slice[entity.Review]
	remote  *resource[entity.Review]
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	API    service.APIClient
	Logger *slog.Logger
}

// NewReviewService creates the review usecase.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	reviews := slice.New[entity.Review]()

	return &reviewService{
		reviews: reviews,
		remote: &resource[entity.Review]{
			api:      params.API,
			state:    reviews,
			logger:   params.Logger.With(slog.String("slice", "reviews")),
			path:     "/api/reviews",
			plural:   "reviews",
			singular: "review",
		},
	}
}

func (s *reviewService) FetchReviews(ctx context.Context, productID string) ([]entity.Review, error) {
	var query map[string]string
	if productID != "" {
		query = map[string]string{"productId": productID}
	}

	return s.remote.list(ctx, "", query)
}

func (s *reviewService) FetchReview(ctx context.Context, id string) (*entity.Review, error) {
	return s.remote.get(ctx, "", id)
}

func (s *reviewService) CreateReview(ctx context.Context, session *entity.Session, input *entity.ReviewInput) (*entity.Review, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	return s.remote.create(ctx, session.Token, input)
}

// UpdateReview only ever changes rating and comment of the cached review, whatever the response holds.
func (s *reviewService) UpdateReview(ctx context.Context, session *entity.Session, id string, update *entity.ReviewUpdate) (*entity.Review, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if err := validateInput(update); err != nil {
		return nil, err
	}
	if err := s.checkOwner(session, id); err != nil {
		return nil, err
	}

	err := s.remote.do(ctx, &service.Request{
		Method: http.MethodPut,
		Path:   s.remote.path + "/" + id,
		Token:  session.Token,
		Body:   update,
	}, nil)
	if err != nil {
		return nil, err
	}

	s.reviews.Mutate(id, func(r *entity.Review) {
		r.Rating = update.Rating
		r.Comment = update.Comment
	})
	review, ok := s.reviews.Get(id)
	if !ok {
		return &entity.Review{ID: id, User: entity.NewRef(session.UserID), Rating: update.Rating, Comment: update.Comment}, nil
	}

	return &review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, session *entity.Session, id string) error {
	if err := requireSession(session); err != nil {
		return err
	}
	if err := s.checkOwner(session, id); err != nil {
		return err
	}

	return s.remote.remove(ctx, session.Token, id)
}

// checkOwner rejects the call when the cached review belongs to someone else.
// An uncached review cannot be checked locally and is left to the API.
func (s *reviewService) checkOwner(session *entity.Session, id string) error {
	review, ok := s.reviews.Get(id)
	if !ok || review.User.ID == "" {
		return nil
	}
	if !review.OwnedBy(session.UserID) {
		return domainerrors.ErrForbidden.WithDetails("only the author can change this review")
	}

	return nil
}

func (s *reviewService) Reviews() []entity.Review {
	return s.reviews.Items()
}

func (s *reviewService) Selected() (entity.Review, bool) {
	return s.reviews.Selected()
}

func (s *reviewService) Status() slice.Status {
	return s.reviews.Status()
}
