package impl

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
	"storefront/internal/usecase/slice"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type discountService struct {
	discounts     *slice.Slice[entity.Discount]
	remote        *resource[entity.Discount]
	notifications usecase.NotificationUsecase
	publisher     service.PushPublisher
	qrcode        service.QRCodeService
	topic         string
	now           func() time.Time
	logger        *slog.Logger
}

// DiscountServiceParams holds dependencies for DiscountService, injected by Fx.
type DiscountServiceParams struct {
	fx.In

	API           service.APIClient
	Notifications usecase.NotificationUsecase
	Publisher     service.PushPublisher
	QRCode        service.QRCodeService
	Config        *config.Config
	Logger        *slog.Logger
}

// discountPayload is what the API receives for create and update.
type discountPayload struct {
	Code       string    `json:"code"`
	Percentage int       `json:"percentage"`
	ExpiresAt  time.Time `json:"expiryDate"`
	Active     bool      `json:"isActive"`
}

// NewDiscountService creates the discount usecase.
func NewDiscountService(params DiscountServiceParams) usecase.DiscountUsecase {
	discounts := slice.New[entity.Discount]()
	logger := params.Logger.With(slog.String("slice", "discounts"))

	topic := ""
	if params.Config != nil && params.Config.Notification != nil {
		topic = params.Config.Notification.Push.DiscountTopic
	}

	return &discountService{
		discounts: discounts,
		remote: &resource[entity.Discount]{
			api:      params.API,
			state:    discounts,
			logger:   logger,
			path:     "/api/discounts",
			plural:   "discounts",
			singular: "discount",
			normalize: func(d *entity.Discount) {
				d.Code = entity.NormalizeCode(d.Code)
			},
		},
		notifications: params.Notifications,
		publisher:     params.Publisher,
		qrcode:        params.QRCode,
		topic:         topic,
		now:           time.Now,
		logger:        logger,
	}
}

// tokenOf returns the bearer credential, or nothing for an anonymous caller.
func tokenOf(session *entity.Session) string {
	if session == nil {
		return ""
	}

	return session.Token
}

func (s *discountService) FetchDiscounts(ctx context.Context, session *entity.Session) ([]entity.Discount, error) {
	return s.remote.list(ctx, tokenOf(session), nil)
}

func (s *discountService) FetchDiscount(ctx context.Context, session *entity.Session, id string) (*entity.Discount, error) {
	return s.remote.get(ctx, tokenOf(session), id)
}

// payloadFor validates input and normalises the code. Nothing is sent when it fails.
func (s *discountService) payloadFor(input *entity.DiscountInput, requireFuture bool) (*discountPayload, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("discount is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	code := entity.NormalizeCode(input.Code)
	if code == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("code must not be blank")
	}
	if requireFuture && !input.ExpiresAt.After(s.now()) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("expiry date must be in the future")
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	return &discountPayload{
		Code:       code,
		Percentage: input.Percentage,
		ExpiresAt:  input.ExpiresAt,
		Active:     active,
	}, nil
}

func (s *discountService) CreateDiscount(ctx context.Context, session *entity.Session, input *entity.DiscountInput) (*entity.Discount, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	payload, err := s.payloadFor(input, true)
	if err != nil {
		return nil, err
	}

	discount, err := s.remote.create(ctx, session.Token, payload)
	if err != nil {
		return nil, err
	}

	if session.IsAdmin() {
		s.announce(ctx, discount)

		return discount, nil
	}
	if _, err := s.notifications.StageDiscount(ctx, session, discount); err != nil {
		s.logger.Warn("Failed to stage discount notification",
			slog.String("discountId", discount.ID), slog.Any("error", err))
	}

	return discount, nil
}

// announce broadcasts a new discount to every subscribed device. Failures are logged only.
func (s *discountService) announce(ctx context.Context, discount *entity.Discount) {
	if s.topic == "" {
		return
	}

	msg := &entity.PushMessage{
		Title: "New discount available",
		Body:  "Use code " + discount.Code + " at checkout",
		Data: entity.NotificationData{
			Screen:   entity.ScreenDiscounts,
			EntityID: discount.ID,
			Type:     entity.NotificationDiscount,
		},
	}
	if err := s.publisher.PublishToTopic(ctx, s.topic, msg); err != nil {
		s.logger.Error("Failed to publish discount push",
			slog.String("discountId", discount.ID), slog.Any("error", err))
	}
}

func (s *discountService) UpdateDiscount(ctx context.Context, session *entity.Session, id string, input *entity.DiscountInput) (*entity.Discount, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	payload, err := s.payloadFor(input, false)
	if err != nil {
		return nil, err
	}

	updated, err := s.remote.update(ctx, session.Token, id, payload)
	if err != nil || updated != nil {
		return updated, err
	}

	patched := entity.Discount{
		ID:         id,
		Code:       payload.Code,
		Percentage: payload.Percentage,
		ExpiresAt:  payload.ExpiresAt,
		Active:     payload.Active,
	}
	s.discounts.Put(patched)

	return &patched, nil
}

func (s *discountService) DeleteDiscount(ctx context.Context, session *entity.Session, id string) error {
	if err := requireSession(session); err != nil {
		return err
	}

	return s.remote.remove(ctx, session.Token, id)
}

func (s *discountService) Apply(code string, amount decimal.Decimal) (decimal.Decimal, *entity.Discount, error) {
	code = entity.NormalizeCode(code)
	for _, d := range s.discounts.Items() {
		if d.Code != code {
			continue
		}
		if !d.Redeemable(s.now()) {
			return amount, nil, domainerrors.ErrDiscountNotRedeemable.WithDetails(code)
		}

		return d.Apply(amount), &d, nil
	}

	return amount, nil, domainerrors.ErrNotFound.WithDetails("discount " + code)
}

func (s *discountService) QRCode(id string) ([]byte, error) {
	discount, ok := s.discounts.Get(id)
	if !ok {
		return nil, domainerrors.ErrNotFound.WithDetails("discount " + id)
	}

	return s.qrcode.GenerateDiscountQR(discount.Code)
}

func (s *discountService) Discounts() []entity.Discount {
	return s.discounts.Items()
}

func (s *discountService) Selected() (entity.Discount, bool) {
	return s.discounts.Selected()
}

func (s *discountService) Status() slice.Status {
	return s.discounts.Status()
}
