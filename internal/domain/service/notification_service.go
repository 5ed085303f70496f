package service

import (
	"context"

	"storefront/internal/domain/entity"
)

// PushPublisher sends push messages through the delivery transport.
type PushPublisher interface {
	// PublishToTopic broadcasts msg to every device subscribed to topic.
	PublishToTopic(ctx context.Context, topic string, msg *entity.PushMessage) error
}
