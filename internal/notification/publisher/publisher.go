package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/papertrails/papertrails/internal/config"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/pubsub"
	"github.com/papertrails/papertrails/internal/types"
)

// NotificationPublisher puts agreement events on the notification bus
type NotificationPublisher interface {
	Publish(ctx context.Context, eventName string, payload *types.AgreementEventPayload) error
	Close() error
}

type notificationPublisher struct {
	publisher pubsub.Publisher
	config    *config.NotificationConfig
	logger    *logger.Logger
}

func NewPublisher(
	pubSub pubsub.PubSub,
	cfg *config.Configuration,
	logger *logger.Logger,
) (NotificationPublisher, error) {
	return &notificationPublisher{
		publisher: pubSub,
		config:    &cfg.Notification,
		logger:    logger,
	}, nil
}

func (p *notificationPublisher) Publish(ctx context.Context, eventName string, payload *types.AgreementEventPayload) error {
	if !p.config.Enabled {
		p.logger.Debugw("notifications disabled, dropping event",
			"event_name", eventName,
			"agreement_id", payload.AgreementID,
		)
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	event := &types.NotificationEvent{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_NOTIFICATION_EVENT),
		EventName: eventName,
		UserID:    types.GetUserID(ctx),
		RequestID: types.GetRequestID(ctx),
		Timestamp: time.Now().UTC(),
		Payload:   body,
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventJSON)
	msg.Metadata.Set("event_name", eventName)
	msg.Metadata.Set("agreement_id", payload.AgreementID)

	p.logger.Debugw("publishing notification event",
		"event_id", event.ID,
		"event_name", eventName,
		"agreement_id", payload.AgreementID,
		"topic", p.config.Topic,
	)

	if err := p.publisher.Publish(ctx, p.config.Topic, msg); err != nil {
		return fmt.Errorf("failed to publish notification event: %w", err)
	}
	return nil
}

func (p *notificationPublisher) Close() error {
	return p.publisher.Close()
}
