// Package notification publishes push messages through Firebase Cloud Messaging.
package notification

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"go.uber.org/fx"
)

// noopPublisher is used when push publishing is disabled
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) PublishToTopic(ctx context.Context, topic string, msg *entity.PushMessage) error {
	p.logger.Debug("Push publishing disabled, skipping",
		slog.String("topic", topic),
		slog.String("type", string(msg.Data.Type)),
	)

	return nil
}

// NewNoopPublisher returns a publisher that only logs.
func NewNoopPublisher(logger *slog.Logger) service.PushPublisher {
	return &noopPublisher{logger: logger}
}

// PublisherParams holds dependencies for PushPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewPushPublisher picks Firebase when enabled, otherwise the no-op publisher.
func NewPushPublisher(params PublisherParams) (service.PushPublisher, error) {
	push := params.Config.Notification.Push
	if !push.Enabled {
		params.Logger.Info("Push publishing not enabled, using no-op publisher")

		return NewNoopPublisher(params.Logger), nil
	}

	params.Logger.Info("Using Firebase push publisher")

	return NewFirebaseService(params.Ctx, push.CredentialsPath)
}
