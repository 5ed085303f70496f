package handler

import (
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// DiscountHandlerParams holds dependencies for DiscountHandler, injected by Fx.
type DiscountHandlerParams struct {
	fx.In

	DiscountUC usecase.DiscountUsecase
}

// DiscountHandler exposes promotional codes.
type DiscountHandler struct {
	discountUC usecase.DiscountUsecase
}

// NewDiscountHandler is the constructor for DiscountHandler
func NewDiscountHandler(params DiscountHandlerParams) *DiscountHandler {
	return &DiscountHandler{discountUC: params.DiscountUC}
}

// ApplyDiscountRequest represents the request body for applying a code
type ApplyDiscountRequest struct {
	Code   string          `json:"code" validate:"required"`
	Amount decimal.Decimal `json:"amount"`
}

// AppliedDiscount is the result of applying a code to an amount.
type AppliedDiscount struct {
	Discount *entity.Discount `json:"discount"`
	Original decimal.Decimal  `json:"original"`
	Total    decimal.Decimal  `json:"total"`
}

// List handles GET /discounts
func (h *DiscountHandler) List(c echo.Context) error {
	discounts, err := h.discountUC.FetchDiscounts(c.Request().Context(), deliverycontext.GetSession(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, discounts, "")
}

// Get handles GET /discounts/:id
func (h *DiscountHandler) Get(c echo.Context) error {
	discount, err := h.discountUC.FetchDiscount(c.Request().Context(), deliverycontext.GetSession(c), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, discount, "")
}

// Create handles POST /discounts
func (h *DiscountHandler) Create(c echo.Context) error {
	var input entity.DiscountInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid discount input")
	}

	discount, err := h.discountUC.CreateDiscount(c.Request().Context(), deliverycontext.GetSession(c), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, discount, "Discount created")
}

// Update handles PUT /discounts/:id
func (h *DiscountHandler) Update(c echo.Context) error {
	var input entity.DiscountInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid discount input")
	}

	discount, err := h.discountUC.UpdateDiscount(c.Request().Context(), deliverycontext.GetSession(c), c.Param("id"), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, discount, "Discount updated")
}

// Delete handles DELETE /discounts/:id
func (h *DiscountHandler) Delete(c echo.Context) error {
	if err := h.discountUC.DeleteDiscount(c.Request().Context(), deliverycontext.GetSession(c), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Discount deleted")
}

// Apply handles POST /discounts/apply
func (h *DiscountHandler) Apply(c echo.Context) error {
	var req ApplyDiscountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid discount input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	total, discount, err := h.discountUC.Apply(req.Code, req.Amount)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, AppliedDiscount{Discount: discount, Original: req.Amount, Total: total}, "")
}

// QRCode handles GET /discounts/:id/qrcode and returns a PNG image.
func (h *DiscountHandler) QRCode(c echo.Context) error {
	png, err := h.discountUC.QRCode(c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
