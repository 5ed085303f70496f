package impl

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const defaultHistoryLimit = 50

// notificationService stages records into the key-value store.
// Storage is best-effort: failures are logged and reads fall back to empty lists.
type notificationService struct {
	mu     sync.Mutex
	store  repository.KeyValueStore
	limit  int
	now    func() time.Time
	logger *slog.Logger
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	Store  repository.KeyValueStore
	Config *config.Config
	Logger *slog.Logger
}

// NewNotificationService creates the notification usecase.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	limit := defaultHistoryLimit
	if params.Config != nil && params.Config.Notification != nil && params.Config.Notification.HistoryLimit > 0 {
		limit = params.Config.Notification.HistoryLimit
	}

	return &notificationService{
		store:  params.Store,
		limit:  limit,
		now:    time.Now,
		logger: params.Logger,
	}
}

// pendingKey is the handoff queue for a type; product notifications have none.
func pendingKey(t entity.NotificationType) string {
	switch t {
	case entity.NotificationOrderStatus:
		return repository.KeyPendingOrderNotifications
	case entity.NotificationDiscount:
		return repository.KeyPendingDiscountNotifications
	default:
		return ""
	}
}

func (s *notificationService) Stage(ctx context.Context, n *entity.Notification) (*entity.Notification, error) {
	if n == nil || n.Title == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("notification title is required")
	}
	if !n.Data.Type.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unknown notification type %q", n.Data.Type))
	}

	record := *n
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = s.now()
	}
	if record.Data.Screen == "" {
		record.Data.Screen = record.Data.Type.DefaultScreen()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendTo(ctx, repository.KeyNotificationsHistory, record)
	if key := pendingKey(record.Data.Type); key != "" {
		s.appendTo(ctx, key, record)
	}
	if record.Data.Type == entity.NotificationDiscount {
		s.appendTo(ctx, repository.KeyNewDiscountNotifications, record)
	}

	return &record, nil
}

func (s *notificationService) StageDiscount(ctx context.Context, session *entity.Session, discount *entity.Discount) (bool, error) {
	// Admins create promotions; they are not who the promotion is for.
	if session.IsAdmin() {
		return false, nil
	}

	_, err := s.Stage(ctx, &entity.Notification{
		Title: "New discount available",
		Body:  fmt.Sprintf("Use code %s for %d%% off", discount.Code, discount.Percentage),
		Data: entity.NotificationData{
			Screen:   entity.ScreenDiscounts,
			EntityID: discount.ID,
			Type:     entity.NotificationDiscount,
		},
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

func (s *notificationService) StageOrderStatus(ctx context.Context, order *entity.Order) (*entity.Notification, error) {
	return s.Stage(ctx, &entity.Notification{
		Title: "Order status updated",
		Body:  fmt.Sprintf("Order %s is now %s", shortID(order.ID), order.Status),
		Data: entity.NotificationData{
			Screen:   entity.ScreenOrderDetails,
			EntityID: order.ID,
			Type:     entity.NotificationOrderStatus,
		},
	})
}

func (s *notificationService) Receive(ctx context.Context, msg *entity.PushMessage) (bool, error) {
	if msg == nil {
		return false, domainerrors.ErrValidationFailed.WithDetails("push message is required")
	}
	if err := validateInput(msg); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if key := pendingKey(msg.Data.Type); key != "" {
		pending := s.load(ctx, key)
		if i := slices.IndexFunc(pending, func(n entity.Notification) bool {
			return n.Data.Matches(msg.Data)
		}); i >= 0 {
			s.save(ctx, key, slices.Delete(pending, i, i+1))

			return false, nil
		}
	}

	data := msg.Data
	if data.Screen == "" {
		data.Screen = data.Type.DefaultScreen()
	}
	s.appendTo(ctx, repository.KeyNotificationsHistory, entity.Notification{
		ID:        uuid.NewString(),
		Title:     msg.Title,
		Body:      msg.Body,
		Data:      data,
		Timestamp: s.now(),
	})

	return true, nil
}

func (s *notificationService) History(ctx context.Context) []entity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx, repository.KeyNotificationsHistory)
}

func (s *notificationService) UnreadCount(ctx context.Context) int {
	count := 0
	for _, n := range s.History(ctx) {
		if !n.Read {
			count++
		}
	}

	return count
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.load(ctx, repository.KeyNotificationsHistory)
	i := slices.IndexFunc(history, func(n entity.Notification) bool { return n.ID == id })
	if i < 0 {
		return domainerrors.ErrNotFound.WithDetails("notification " + id)
	}
	if history[i].Read {
		return nil
	}
	history[i].Read = true
	s.save(ctx, repository.KeyNotificationsHistory, history)

	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.load(ctx, repository.KeyNotificationsHistory)
	for i := range history {
		history[i].Read = true
	}
	s.save(ctx, repository.KeyNotificationsHistory, history)

	return nil
}

// Clear empties the history only; pending queues still suppress duplicates.
func (s *notificationService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, repository.KeyNotificationsHistory); err != nil {
		s.logger.Error("Failed to clear notification history", slog.Any("error", err))
	}

	return nil
}

func (s *notificationService) NewDiscounts(ctx context.Context) []entity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx, repository.KeyNewDiscountNotifications)
}

func (s *notificationService) AcknowledgeNewDiscounts(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, repository.KeyNewDiscountNotifications); err != nil {
		s.logger.Error("Failed to acknowledge new discounts", slog.Any("error", err))
	}

	return nil
}

// appendTo adds n to the list under key, evicting the oldest entries beyond the limit.
// Callers hold s.mu.
func (s *notificationService) appendTo(ctx context.Context, key string, n entity.Notification) {
	list := append(s.load(ctx, key), n)
	if over := len(list) - s.limit; over > 0 {
		list = list[over:]
	}
	s.save(ctx, key, list)
}

func (s *notificationService) load(ctx context.Context, key string) []entity.Notification {
	list := []entity.Notification{}
	if _, err := repository.GetJSON(ctx, s.store, key, &list); err != nil {
		s.logger.Error("Failed to read notifications", slog.String("key", key), slog.Any("error", err))

		return []entity.Notification{}
	}

	return list
}

func (s *notificationService) save(ctx context.Context, key string, list []entity.Notification) {
	if err := repository.SetJSON(ctx, s.store, key, list); err != nil {
		s.logger.Error("Failed to write notifications", slog.String("key", key), slog.Any("error", err))
	}
}

func shortID(id string) string {
	if len(id) > 6 {
		return "#" + id[len(id)-6:]
	}

	return "#" + id
}
