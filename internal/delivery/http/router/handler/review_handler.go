package handler

import (
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReviewHandlerParams holds dependencies for ReviewHandler, injected by Fx.
type ReviewHandlerParams struct {
	fx.In

	ReviewUC usecase.ReviewUsecase
}

// ReviewHandler exposes product reviews.
type ReviewHandler struct {
	reviewUC usecase.ReviewUsecase
}

// NewReviewHandler is the constructor for ReviewHandler
func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{reviewUC: params.ReviewUC}
}

// List handles GET /reviews?productId=
func (h *ReviewHandler) List(c echo.Context) error {
	reviews, err := h.reviewUC.FetchReviews(c.Request().Context(), c.QueryParam("productId"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, reviews, "")
}

// Get handles GET /reviews/:id
func (h *ReviewHandler) Get(c echo.Context) error {
	review, err := h.reviewUC.FetchReview(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, review, "")
}

// Create handles POST /reviews
func (h *ReviewHandler) Create(c echo.Context) error {
	var input entity.ReviewInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid review input")
	}

	review, err := h.reviewUC.CreateReview(c.Request().Context(), deliverycontext.GetSession(c), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, review, "Review posted")
}

// Update handles PUT /reviews/:id
func (h *ReviewHandler) Update(c echo.Context) error {
	var update entity.ReviewUpdate
	if err := c.Bind(&update); err != nil {
		return response.BindingError(c, "Invalid review input")
	}

	review, err := h.reviewUC.UpdateReview(c.Request().Context(), deliverycontext.GetSession(c), c.Param("id"), &update)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, review, "Review updated")
}

// Delete handles DELETE /reviews/:id
func (h *ReviewHandler) Delete(c echo.Context) error {
	if err := h.reviewUC.DeleteReview(c.Request().Context(), deliverycontext.GetSession(c), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Review deleted")
}
