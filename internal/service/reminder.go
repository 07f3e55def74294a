package service

import (
	"context"
	"time"

	"github.com/papertrails/papertrails/internal/cache"
	"github.com/papertrails/papertrails/internal/domain/agreement"
	"github.com/papertrails/papertrails/internal/types"
)

// reminderDedupTTL outlives the day a reminder key is built for
const reminderDedupTTL = 48 * time.Hour

type ReminderService interface {
	// Evaluate decides the reminder due for the agreement on today and
	// publishes it once per agreement, expiry, kind and day. It reports
	// the decision and whether an event was published.
	Evaluate(ctx context.Context, a *agreement.Agreement, today time.Time) (agreement.Reminder, bool, error)
}

type reminderService struct {
	ServiceParams
}

func NewReminderService(params ServiceParams) ReminderService {
	return &reminderService{ServiceParams: params}
}

func (s *reminderService) Evaluate(ctx context.Context, a *agreement.Agreement, today time.Time) (agreement.Reminder, bool, error) {
	reminder := agreement.DecideReminder(today, a.ExpiryDate, a.ReminderTime)
	if !reminder.IsDue() {
		return reminder, false, nil
	}

	key := cache.GenerateKey(cache.PrefixReminder,
		a.ID,
		a.ExpiryDate.Format(types.DateLayout),
		reminder.Kind,
		today.Format(types.DateLayout),
	)
	if !s.Cache.Add(ctx, key, true, reminderDedupTTL) {
		s.Logger.Debugw("reminder already sent today",
			"agreement_id", a.ID,
			"kind", reminder.Kind,
		)
		return reminder, false, nil
	}

	payload := &types.AgreementEventPayload{
		AgreementID:   a.ID,
		ActorID:       types.GetUserID(ctx),
		ReminderKind:  reminder.Kind,
		DaysRemaining: reminder.DaysRemaining,
		ReminderLabel: reminder.Label,
		Date:          today.Format(types.DateLayout),
	}
	if err := s.NotificationPublisher.Publish(ctx, types.NotificationEventAgreementReminder, payload); err != nil {
		// let a later save or sweep try again
		s.Cache.Delete(ctx, key)
		return reminder, false, err
	}

	s.Logger.Infow("published agreement reminder",
		"agreement_id", a.ID,
		"kind", reminder.Kind,
		"days_remaining", reminder.DaysRemaining,
	)
	return reminder, true, nil
}
