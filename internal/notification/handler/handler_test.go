package handler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/papertrails/papertrails/internal/config"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/sentry"
	"github.com/papertrails/papertrails/internal/service"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifications struct {
	err     error
	calls   int
	event   string
	payload *types.AgreementEventPayload
	userID  string
}

func (f *fakeNotifications) Deliver(ctx context.Context, eventName string, payload *types.AgreementEventPayload) (*service.DeliveryReport, error) {
	f.calls++
	f.event = eventName
	f.payload = payload
	f.userID = types.GetUserID(ctx)
	if f.err != nil {
		return &service.DeliveryReport{}, f.err
	}
	return &service.DeliveryReport{Recipients: 2, Sent: 2}, nil
}

func newTestHandler(notifications service.NotificationService) *handler {
	cfg := config.GetDefaultConfig()
	log := logger.NewNopLogger()
	return NewHandler(nil, cfg, notifications, log, sentry.NewSentryService(cfg, log)).(*handler)
}

func newMessage(t *testing.T, payload any) *message.Message {
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	event := types.NotificationEvent{
		ID:        "evt_1",
		EventName: types.NotificationEventAgreementReminder,
		UserID:    "user_1",
		Payload:   raw,
	}
	body, err := json.Marshal(event)
	require.NoError(t, err)
	return message.NewMessage(event.ID, body)
}

func TestProcessMessage_Delivers(t *testing.T) {
	fake := &fakeNotifications{}
	h := newTestHandler(fake)

	err := h.processMessage(newMessage(t, types.AgreementEventPayload{
		AgreementID:  "agr_1",
		ReminderKind: types.ReminderKindOn,
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, types.NotificationEventAgreementReminder, fake.event)
	assert.Equal(t, "agr_1", fake.payload.AgreementID)
	assert.Equal(t, types.ReminderKindOn, fake.payload.ReminderKind)
	assert.Equal(t, "user_1", fake.userID)
}

func TestProcessMessage_DropsMalformed(t *testing.T) {
	fake := &fakeNotifications{}
	h := newTestHandler(fake)

	err := h.processMessage(message.NewMessage("evt_2", []byte("{not json")))
	assert.NoError(t, err)
	assert.Zero(t, fake.calls)
}

func TestProcessMessage_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{
			name: "agreement gone",
			err:  ierr.NewError("agreement not found").Mark(ierr.ErrNotFound),
		},
		{
			name: "delivery failed",
			err:  ierr.NewError("mailbox full").Mark(ierr.ErrNotification),
		},
		{
			name:    "database unavailable",
			err:     errors.New("connection refused"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeNotifications{err: tt.err}
			h := newTestHandler(fake)

			err := h.processMessage(newMessage(t, types.AgreementEventPayload{AgreementID: "agr_1"}))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, 1, fake.calls)
		})
	}
}
