package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/usecase/slice"
)

// OrderUsecase holds every order visible to the session plus the signed-in user's own subset.
type OrderUsecase interface {
	// FetchOrders loads all orders, derives the user's subset and stages a
	// notification for every owned order whose status changed since the last fetch.
	FetchOrders(ctx context.Context, session *entity.Session) ([]entity.Order, error)
	FetchOrder(ctx context.Context, session *entity.Session, id string) (*entity.Order, error)

	// PlaceOrder submits a checkout payload and appends the created order.
	PlaceOrder(ctx context.Context, session *entity.Session, payload any) (*entity.Order, error)

	// UpdateOrderStatus changes the status remotely, then re-fetches. It never updates optimistically.
	UpdateOrderStatus(ctx context.Context, session *entity.Session, id string, update *entity.OrderStatusUpdate) error
	DeleteOrder(ctx context.Context, session *entity.Session, id string) error

	Orders() []entity.Order
	MyOrders() []entity.Order
	Selected() (entity.Order, bool)
	Status() slice.Status
}
