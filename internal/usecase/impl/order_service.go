package impl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
	"storefront/internal/usecase/slice"

	"go.uber.org/fx"
)

type orderService struct {
	orders        *slice.Slice[entity.Order]
	remote        *resource[entity.Order]
	notifications usecase.NotificationUsecase
	publisher     service.PushPublisher
	topicPrefix   string
	logger        *slog.Logger

	mu     sync.RWMutex
	mine   []entity.Order
	seeded bool // false until the first successful fetch, so startup stages nothing
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	API           service.APIClient
	Notifications usecase.NotificationUsecase
	Publisher     service.PushPublisher
	Config        *config.Config
	Logger        *slog.Logger
}

// NewOrderService creates the order usecase.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	orders := slice.New[entity.Order]()
	logger := params.Logger.With(slog.String("slice", "orders"))

	prefix := ""
	if params.Config != nil && params.Config.Notification != nil {
		prefix = params.Config.Notification.Push.UserTopicPrefix
	}

	return &orderService{
		orders: orders,
		remote: &resource[entity.Order]{
			api:      params.API,
			state:    orders,
			logger:   logger,
			path:     "/api/orders",
			plural:   "orders",
			singular: "order",
		},
		notifications: params.Notifications,
		publisher:     params.Publisher,
		topicPrefix:   prefix,
		logger:        logger,
	}
}

func (s *orderService) FetchOrders(ctx context.Context, session *entity.Session) ([]entity.Order, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if session.UserID == "" {
		return nil, domainerrors.ErrMissingUserID
	}

	all, err := s.remote.list(ctx, session.Token, nil)
	if err != nil {
		return nil, err
	}

	mine := ownedBy(all, session.UserID)
	changed := s.swapMine(mine)

	for i := range changed {
		if _, err := s.notifications.StageOrderStatus(ctx, &changed[i]); err != nil {
			s.logger.Warn("Failed to stage order status notification",
				slog.String("orderId", changed[i].ID), slog.Any("error", err))
		}
	}

	return all, nil
}

// swapMine installs the new subset and returns the owned orders whose status moved.
func (s *orderService) swapMine(mine []entity.Order) []entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed []entity.Order
	if s.seeded {
		previous := make(map[string]entity.OrderStatus, len(s.mine))
		for _, o := range s.mine {
			previous[o.ID] = o.Status
		}
		for _, o := range mine {
			if status, ok := previous[o.ID]; ok && status != o.Status {
				changed = append(changed, o)
			}
		}
	}
	s.mine = mine
	s.seeded = true

	return changed
}

// ownedBy keeps orders whose userId, raw or expanded, equals userID.
func ownedBy(orders []entity.Order, userID string) []entity.Order {
	mine := []entity.Order{}
	for _, o := range orders {
		if o.User.Is(userID) {
			mine = append(mine, o)
		}
	}

	return mine
}

func (s *orderService) FetchOrder(ctx context.Context, session *entity.Session, id string) (*entity.Order, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	return s.remote.get(ctx, session.Token, id)
}

func (s *orderService) PlaceOrder(ctx context.Context, session *entity.Session, payload any) (*entity.Order, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	order, err := s.remote.create(ctx, session.Token, payload)
	if err != nil {
		return nil, err
	}

	if order.User.ID == "" || order.User.Is(session.UserID) {
		s.mu.Lock()
		s.mine = append(s.mine, *order)
		s.mu.Unlock()
	}

	return order, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, session *entity.Session, id string, update *entity.OrderStatusUpdate) error {
	if err := requireSession(session); err != nil {
		return err
	}
	if !session.IsAdmin() {
		return domainerrors.ErrForbidden.WithDetails("only administrators can change an order's status")
	}
	if err := validateInput(update); err != nil {
		return err
	}
	if order, ok := s.orders.Get(id); ok && order.Status.IsFinal() {
		return domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("order %s is %s and can no longer change", shortID(id), order.Status))
	}

	err := s.remote.do(ctx, &service.Request{
		Method: http.MethodPut,
		Path:   s.remote.path + "/" + id,
		Token:  session.Token,
		Body:   update,
	}, nil)
	if err != nil {
		return err
	}

	s.notifyOwner(ctx, id, update.Status)

	// The status change already happened remotely; a failed refresh only leaves local state stale.
	if _, err := s.FetchOrders(ctx, session); err != nil {
		s.logger.Warn("Failed to refresh orders after status update",
			slog.String("orderId", id), slog.Any("error", err))
	}

	return nil
}

// notifyOwner pushes the status change to the order owner's topic. Failures are logged only.
func (s *orderService) notifyOwner(ctx context.Context, id string, status entity.OrderStatus) {
	order, ok := s.orders.Get(id)
	if !ok || order.User.ID == "" {
		s.logger.Debug("Order owner unknown, skipping push", slog.String("orderId", id))

		return
	}

	msg := &entity.PushMessage{
		Title: "Order status updated",
		Body:  "Your order " + shortID(id) + " is now " + string(status),
		Data: entity.NotificationData{
			Screen:   entity.ScreenOrderDetails,
			EntityID: id,
			Type:     entity.NotificationOrderStatus,
		},
	}
	if err := s.publisher.PublishToTopic(ctx, s.topicPrefix+order.User.ID, msg); err != nil {
		s.logger.Error("Failed to publish order status push",
			slog.String("orderId", id), slog.Any("error", err))
	}
}

func (s *orderService) DeleteOrder(ctx context.Context, session *entity.Session, id string) error {
	if err := requireSession(session); err != nil {
		return err
	}
	if err := s.remote.remove(ctx, session.Token, id); err != nil {
		return err
	}

	s.mu.Lock()
	s.mine = slices.DeleteFunc(s.mine, func(o entity.Order) bool { return o.ID == id })
	s.mu.Unlock()

	return nil
}

func (s *orderService) Orders() []entity.Order {
	return s.orders.Items()
}

func (s *orderService) MyOrders() []entity.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.mine)
}

func (s *orderService) Selected() (entity.Order, bool) {
	return s.orders.Selected()
}

func (s *orderService) Status() slice.Status {
	return s.orders.Status()
}
