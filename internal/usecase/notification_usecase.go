package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// NotificationUsecase stages notification records locally and tracks what the user has seen.
//
// Two lists are kept apart: the capped history is what the user sees, while the
// pending queues hand events to Receive so a push for an already shown event is dropped.
type NotificationUsecase interface {
	// Stage timestamps n if needed and writes it to the history and its pending queue.
	Stage(ctx context.Context, n *entity.Notification) (*entity.Notification, error)

	// StageDiscount stages a new-discount notification unless the creating session is an admin.
	// It reports whether anything was staged.
	StageDiscount(ctx context.Context, session *entity.Session, discount *entity.Discount) (bool, error)

	// StageOrderStatus stages a status-change notification for an owned order.
	StageOrderStatus(ctx context.Context, order *entity.Order) (*entity.Notification, error)

	// Receive handles a delivered push. A matching pending entry is consumed instead of
	// adding a duplicate to history. It reports whether history grew.
	Receive(ctx context.Context, msg *entity.PushMessage) (bool, error)

	History(ctx context.Context) []entity.Notification
	UnreadCount(ctx context.Context) int
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	Clear(ctx context.Context) error

	// NewDiscounts lists discount notifications not yet acknowledged.
	NewDiscounts(ctx context.Context) []entity.Notification
	AcknowledgeNewDiscounts(ctx context.Context) error
}
