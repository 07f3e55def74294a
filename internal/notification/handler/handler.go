package handler

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/papertrails/papertrails/internal/config"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/pubsub"
	pubsubRouter "github.com/papertrails/papertrails/internal/pubsub/router"
	"github.com/papertrails/papertrails/internal/sentry"
	"github.com/papertrails/papertrails/internal/service"
	"github.com/papertrails/papertrails/internal/types"
)

// Handler consumes agreement notification events from the bus
type Handler interface {
	RegisterHandler(router *pubsubRouter.Router)
}

type handler struct {
	pubSub        pubsub.PubSub
	config        *config.NotificationConfig
	notifications service.NotificationService
	logger        *logger.Logger
	sentry        *sentry.Service
}

func NewHandler(
	pubSub pubsub.PubSub,
	cfg *config.Configuration,
	notifications service.NotificationService,
	logger *logger.Logger,
	sentry *sentry.Service,
) Handler {
	return &handler{
		pubSub:        pubSub,
		config:        &cfg.Notification,
		notifications: notifications,
		logger:        logger,
		sentry:        sentry,
	}
}

func (h *handler) RegisterHandler(router *pubsubRouter.Router) {
	router.AddNoPublishHandler(
		"agreement_notification_handler",
		h.config.Topic,
		h.pubSub,
		h.processMessage,
	)
}

// processMessage delivers one event. Only errors worth retrying are returned;
// delivery failures are reported and dropped.
func (h *handler) processMessage(msg *message.Message) error {
	var event types.NotificationEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		h.logger.Errorw("failed to unmarshal notification event",
			"error", err,
			"message_uuid", msg.UUID,
		)
		return nil
	}

	var payload types.AgreementEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		h.logger.Errorw("failed to unmarshal agreement payload",
			"error", err,
			"event_id", event.ID,
			"event_name", event.EventName,
		)
		return nil
	}

	ctx := context.WithValue(msg.Context(), types.CtxRequestID, event.RequestID)
	ctx = types.SetUserID(ctx, event.UserID)

	return h.handle(ctx, &event, &payload)
}

func (h *handler) handle(ctx context.Context, event *types.NotificationEvent, payload *types.AgreementEventPayload) error {
	report, err := h.notifications.Deliver(ctx, event.EventName, payload)
	if err == nil {
		h.logger.Debugw("processed notification event",
			"event_id", event.ID,
			"event_name", event.EventName,
			"agreement_id", payload.AgreementID,
			"recipients", report.Recipients,
		)
		return nil
	}

	// the agreement may be gone by the time the event is handled
	if ierr.IsNotFound(err) || ierr.IsValidation(err) {
		h.logger.Warnw("dropping notification event",
			"event_id", event.ID,
			"event_name", event.EventName,
			"agreement_id", payload.AgreementID,
			"error", err,
		)
		return nil
	}

	if ierr.IsNotification(err) {
		h.logger.Errorw("agreement notification delivery failed",
			"event_id", event.ID,
			"event_name", event.EventName,
			"agreement_id", payload.AgreementID,
			"error", err,
		)
		h.sentry.CaptureExceptionWithTags(err, map[string]string{
			"agreement_id": payload.AgreementID,
			"event_name":   event.EventName,
		})
		return nil
	}

	return err
}
