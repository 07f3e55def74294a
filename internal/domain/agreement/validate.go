package agreement

import (
	ierr "github.com/papertrails/papertrails/internal/errors"
)

// Validate checks the date ordering start < reminder < expiry.
// ApplyDefaults must run first so a missing reminder gets its default.
func (a *Agreement) Validate() error {
	if a.StartDate.IsZero() || a.ExpiryDate.IsZero() {
		return ierr.NewError("start and expiry dates are required").
			WithHint("Start date and expiry date are required.").
			Mark(ierr.ErrValidation)
	}

	if !a.ExpiryDate.After(a.StartDate) {
		return newDateError("expiry_date", "Expiry date must be after start date.", a)
	}
	if !a.ReminderTime.After(a.StartDate) {
		return newDateError("reminder_time", "Reminder must be after start date.", a)
	}
	if !a.ReminderTime.Before(a.ExpiryDate) {
		return newDateError("reminder_time", "Reminder must be before expiry date.", a)
	}
	return nil
}

func newDateError(field, message string, a *Agreement) error {
	return ierr.NewError(message).
		WithHint(message).
		WithReportableDetails(map[string]any{
			"field":         field,
			"start_date":    a.StartDate,
			"expiry_date":   a.ExpiryDate,
			"reminder_time": a.ReminderTime,
		}).
		Mark(ierr.ErrValidation)
}

func NewAgreementNotFoundError(id string) error {
	return ierr.NewError("agreement not found").
		WithHintf("Agreement %s was not found", id).
		WithReportableDetails(map[string]any{
			"agreement_id": id,
		}).
		Mark(ierr.ErrNotFound)
}
