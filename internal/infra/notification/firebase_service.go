package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// messageSender is the slice of the FCM client the publisher needs.
type messageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type firebaseService struct {
	client messageSender
}

// NewFirebaseService creates a Firebase push publisher from a service-account file.
func NewFirebaseService(ctx context.Context, credentialsPath string) (service.PushPublisher, error) {
	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &firebaseService{client: client}, nil
}

// PublishToTopic sends msg to every device subscribed to topic.
func (s *firebaseService) PublishToTopic(ctx context.Context, topic string, msg *entity.PushMessage) error {
	data, err := dataMap(msg.Data)
	if err != nil {
		return err
	}

	message := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: data,
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		return fmt.Errorf("failed to send notification to topic %s: %w", topic, err)
	}

	return nil
}

// dataMap flattens the payload into FCM's string map.
func dataMap(d entity.NotificationData) (map[string]string, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notification data: %w", err)
	}

	out := map[string]string{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to flatten notification data: %w", err)
	}

	return out, nil
}
