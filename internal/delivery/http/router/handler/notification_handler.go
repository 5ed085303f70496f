package handler

import (
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// NotificationHandlerParams holds dependencies for NotificationHandler, injected by Fx.
type NotificationHandlerParams struct {
	fx.In

	NotificationUC usecase.NotificationUsecase
}

// NotificationHandler exposes the local notification centre and the push receipt hook.
type NotificationHandler struct {
	notificationUC usecase.NotificationUsecase
}

// NewNotificationHandler is the constructor for NotificationHandler
func NewNotificationHandler(params NotificationHandlerParams) *NotificationHandler {
	return &NotificationHandler{notificationUC: params.NotificationUC}
}

// HistoryView is the notification list with its unread badge.
type HistoryView struct {
	Items  []entity.Notification `json:"items"`
	Unread int                   `json:"unread"`
}

// History handles GET /notifications
func (h *NotificationHandler) History(c echo.Context) error {
	ctx := c.Request().Context()

	return response.Success(c, http.StatusOK, HistoryView{
		Items:  h.notificationUC.History(ctx),
		Unread: h.notificationUC.UnreadCount(ctx),
	}, "")
}

// MarkRead handles POST /notifications/:id/read
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	if err := h.notificationUC.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Marked as read")
}

// MarkAllRead handles POST /notifications/read
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	if err := h.notificationUC.MarkAllRead(c.Request().Context()); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "All marked as read")
}

// Clear handles DELETE /notifications
func (h *NotificationHandler) Clear(c echo.Context) error {
	if err := h.notificationUC.Clear(c.Request().Context()); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Notifications cleared")
}

// NewDiscounts handles GET /notifications/discounts
func (h *NotificationHandler) NewDiscounts(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.notificationUC.NewDiscounts(c.Request().Context()), "")
}

// AcknowledgeNewDiscounts handles DELETE /notifications/discounts
func (h *NotificationHandler) AcknowledgeNewDiscounts(c echo.Context) error {
	if err := h.notificationUC.AcknowledgeNewDiscounts(c.Request().Context()); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "New discounts acknowledged")
}

// Receive handles POST /notifications/receive, called when the device gets a push.
func (h *NotificationHandler) Receive(c echo.Context) error {
	var msg entity.PushMessage
	if err := c.Bind(&msg); err != nil {
		return response.BindingError(c, "Invalid push payload")
	}

	added, err := h.notificationUC.Receive(c.Request().Context(), &msg)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"added": added}, "")
}
