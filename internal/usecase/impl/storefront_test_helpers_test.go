package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Notification: &config.NotificationConfig{
			HistoryLimit: 50,
			Push: config.PushConfig{
				DiscountTopic:   "discounts",
				UserTopicPrefix: "user_",
			},
		},
		Checkout: &config.CheckoutConfig{DefaultShippingFee: 75},
	}
}

func customerSession() *entity.Session {
	return &entity.Session{Token: "customer-token", UserID: "u1", Role: entity.RoleCustomer}
}

func adminSession() *entity.Session {
	return &entity.Session{Token: "admin-token", UserID: "admin1", Role: entity.RoleAdmin}
}

// mockAPIClient is a testify mock of service.APIClient.
type mockAPIClient struct {
	mock.Mock
}

func (m *mockAPIClient) Do(ctx context.Context, req *service.Request) ([]byte, error) {
	args := m.Called(ctx, req)
	body, _ := args.Get(0).([]byte)

	return body, args.Error(1)
}

// call matches a request by method and path.
func call(method, path string) any {
	return mock.MatchedBy(func(r *service.Request) bool {
		return r.Method == method && r.Path == path
	})
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishToTopic(ctx context.Context, topic string, msg *entity.PushMessage) error {
	return m.Called(ctx, topic, msg).Error(0)
}

type mockQRCode struct {
	mock.Mock
}

func (m *mockQRCode) GenerateDiscountQR(code string) ([]byte, error) {
	args := m.Called(code)
	png, _ := args.Get(0).([]byte)

	return png, args.Error(1)
}

func (m *mockQRCode) ParseDiscountQR(data string) (string, error) {
	args := m.Called(data)

	return args.String(0), args.Error(1)
}

// failingStore rejects every operation.
type failingStore struct{}

var errStoreDown = errors.New("store unavailable")

func (failingStore) Get(context.Context, string) (string, bool, error) { return "", false, errStoreDown }
func (failingStore) Set(context.Context, string, string) error         { return errStoreDown }
func (failingStore) Delete(context.Context, string) error              { return errStoreDown }

// recordingStage captures staged notifications for order and discount tests.
type recordingStage struct {
	mu       sync.Mutex
	orders   []entity.Order
	discount []entity.Discount
}

func (r *recordingStage) Stage(_ context.Context, n *entity.Notification) (*entity.Notification, error) {
	return n, nil
}

func (r *recordingStage) StageDiscount(_ context.Context, session *entity.Session, d *entity.Discount) (bool, error) {
	if session.IsAdmin() {
		return false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.discount = append(r.discount, *d)

	return true, nil
}

func (r *recordingStage) StageOrderStatus(_ context.Context, o *entity.Order) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, *o)

	return &entity.Notification{}, nil
}

func (r *recordingStage) Receive(context.Context, *entity.PushMessage) (bool, error) { return false, nil }
func (r *recordingStage) History(context.Context) []entity.Notification              { return nil }
func (r *recordingStage) UnreadCount(context.Context) int                             { return 0 }
func (r *recordingStage) MarkRead(context.Context, string) error                      { return nil }
func (r *recordingStage) MarkAllRead(context.Context) error                           { return nil }
func (r *recordingStage) Clear(context.Context) error                                 { return nil }
func (r *recordingStage) NewDiscounts(context.Context) []entity.Notification          { return nil }
func (r *recordingStage) AcknowledgeNewDiscounts(context.Context) error               { return nil }
