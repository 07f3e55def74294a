package agreement

import (
	"fmt"
	"time"

	"github.com/papertrails/papertrails/internal/types"
)

// Reminder is the outcome of DecideReminder. A zero Reminder means nothing is due.
type Reminder struct {
	Kind          types.ReminderKind `json:"kind"`
	DaysRemaining int                `json:"days_remaining"`
	Label         string             `json:"label,omitempty"`
}

// IsDue reports whether a reminder should be sent
func (r Reminder) IsDue() bool {
	return r.Kind != types.ReminderKindNone
}

type reminderWindow struct {
	from, to int
	kind     types.ReminderKind
	label    string
}

// windows are checked in order after the reminder date; the first match wins
var reminderWindows = []reminderWindow{
	{from: 29, to: 30, kind: types.ReminderKindBefore, label: "30 days"},
	{from: 14, to: 15, kind: types.ReminderKindBefore, label: "15 days"},
	{from: 6, to: 7, kind: types.ReminderKindBefore, label: "7 days"},
	{from: 0, to: 0, kind: types.ReminderKindOn},
	{from: -30, to: -29, kind: types.ReminderKindAfter, label: "1 month"},
}

// DecideReminder maps a calendar date against an agreement's expiry and
// reminder dates to at most one reminder.
func DecideReminder(today, expiry, reminderTime time.Time) Reminder {
	days := types.DaysBetween(today, expiry)

	if !reminderTime.IsZero() && types.SameDay(reminderTime, today) {
		return Reminder{
			Kind:          types.ReminderKindBefore,
			DaysRemaining: days,
			Label:         fmt.Sprintf("%d days", days),
		}
	}

	for _, w := range reminderWindows {
		if days >= w.from && days <= w.to {
			return Reminder{Kind: w.kind, DaysRemaining: days, Label: w.label}
		}
	}
	return Reminder{DaysRemaining: days}
}
