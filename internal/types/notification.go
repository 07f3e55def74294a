package types

import (
	"encoding/json"
	"time"
)

// NotificationEvent is published on the notification bus after a commit
type NotificationEvent struct {
	ID        string          `json:"id"`
	EventName string          `json:"event_name"`
	UserID    string          `json:"user_id"`
	RequestID string          `json:"request_id"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// agreement notification event names
const (
	NotificationEventAgreementCreated  = "agreement.created"
	NotificationEventAgreementUpdated  = "agreement.updated"
	NotificationEventAgreementReminder = "agreement.reminder"
)

// AgreementEventPayload is the payload of every agreement notification event
type AgreementEventPayload struct {
	AgreementID string `json:"agreement_id"`
	// Action is "created" or "updated" for action events
	Action string `json:"action,omitempty"`
	// ActorID is the user that caused the event
	ActorID string `json:"actor_id,omitempty"`

	// Reminder fields are set for agreement.reminder events
	ReminderKind  ReminderKind `json:"reminder_kind,omitempty"`
	DaysRemaining int          `json:"days_remaining,omitempty"`
	ReminderLabel string       `json:"reminder_label,omitempty"`
	// Date is the calendar day the reminder was decided for
	Date string `json:"date,omitempty"`
}
