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

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
}

// CartHandler exposes the shopping cart and checkout.
type CartHandler struct {
	cartUC usecase.CartUsecase
}

// NewCartHandler is the constructor for CartHandler
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{cartUC: params.CartUC}
}

// CartView is the cart as screens render it.
type CartView struct {
	Items    []entity.CartItem `json:"items"`
	Count    int               `json:"count"`
	Subtotal decimal.Decimal   `json:"subtotal"`
}

func (h *CartHandler) view(items []entity.CartItem) CartView {
	if items == nil {
		items = []entity.CartItem{}
	}

	return CartView{Items: items, Count: len(items), Subtotal: h.cartUC.Subtotal()}
}

// Get handles GET /cart
func (h *CartHandler) Get(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.view(h.cartUC.Items()), "")
}

// Add handles POST /cart/items with the product to copy into the cart.
func (h *CartHandler) Add(c echo.Context) error {
	var product entity.Product
	if err := c.Bind(&product); err != nil || product.ID == "" {
		return response.BindingError(c, "A product with an _id is required")
	}

	items := h.cartUC.Add(c.Request().Context(), product)

	return response.Success(c, http.StatusOK, h.view(items), "Added to cart")
}

// Remove handles DELETE /cart/items/:productId
func (h *CartHandler) Remove(c echo.Context) error {
	items := h.cartUC.Remove(c.Request().Context(), c.Param("productId"))

	return response.Success(c, http.StatusOK, h.view(items), "Removed from cart")
}

// Checkout handles POST /cart/checkout. An empty body checks out the cart as is.
func (h *CartHandler) Checkout(c echo.Context) error {
	var input entity.CheckoutInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid checkout input")
	}

	order, err := h.cartUC.Checkout(c.Request().Context(), deliverycontext.GetSession(c), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, order, "Order placed")
}
