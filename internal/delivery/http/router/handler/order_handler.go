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

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
}

// OrderHandler exposes order history and administration.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{orderUC: params.OrderUC}
}

// OrdersView pairs every visible order with the signed-in user's own.
type OrdersView struct {
	Orders   []entity.Order `json:"orders"`
	MyOrders []entity.Order `json:"myOrders"`
}

// List handles GET /orders
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.orderUC.FetchOrders(c.Request().Context(), deliverycontext.GetSession(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	mine := h.orderUC.MyOrders()
	if mine == nil {
		mine = []entity.Order{}
	}

	return response.Success(c, http.StatusOK, OrdersView{Orders: orders, MyOrders: mine}, "")
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.orderUC.FetchOrder(c.Request().Context(), deliverycontext.GetSession(c), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "")
}

// UpdateStatus handles PUT /orders/:id/status
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var update entity.OrderStatusUpdate
	if err := c.Bind(&update); err != nil {
		return response.BindingError(c, "Invalid status input")
	}

	if err := h.orderUC.UpdateOrderStatus(c.Request().Context(), deliverycontext.GetSession(c), c.Param("id"), &update); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, h.orderUC.Orders(), "Order status updated")
}

// Delete handles DELETE /orders/:id
func (h *OrderHandler) Delete(c echo.Context) error {
	if err := h.orderUC.DeleteOrder(c.Request().Context(), deliverycontext.GetSession(c), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Order deleted")
}
