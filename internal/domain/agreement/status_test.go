package agreement

import (
	"context"
	"testing"
	"time"

	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateStatus(t *testing.T) {
	expiry := date(2026, time.January, 12)

	assert.Equal(t, types.AgreementStatusOngoing, EvaluateStatus(expiry, date(2025, time.June, 1)))
	assert.Equal(t, types.AgreementStatusOngoing, EvaluateStatus(expiry, expiry))
	assert.Equal(t, types.AgreementStatusOngoing, EvaluateStatus(expiry, time.Date(2026, time.January, 12, 23, 59, 59, 0, time.UTC)))
	assert.Equal(t, types.AgreementStatusExpired, EvaluateStatus(expiry, date(2026, time.January, 13)))
}

func TestAgreement_ApplyDefaults(t *testing.T) {
	a := NewAgreement(context.Background(), "Cleaning services", date(2025, time.January, 1), date(2026, time.January, 1))
	a.ApplyDefaults()
	assert.Equal(t, date(2025, time.July, 5), a.ReminderTime)

	given := date(2025, time.December, 1)
	b := NewAgreement(context.Background(), "Catering", date(2025, time.January, 1), date(2026, time.January, 1))
	b.ReminderTime = given
	b.ApplyDefaults()
	assert.Equal(t, given, b.ReminderTime)
}

func TestAgreement_Refresh(t *testing.T) {
	a := NewAgreement(context.Background(), "Lease", date(2024, time.January, 1), date(2025, time.January, 1))

	a.Refresh(date(2024, time.December, 31))
	assert.Equal(t, types.AgreementStatusOngoing, a.AgreementStatus)

	a.Refresh(date(2025, time.January, 2))
	assert.Equal(t, types.AgreementStatusExpired, a.AgreementStatus)

	// extending the expiry flips it back
	a.ExpiryDate = date(2026, time.January, 1)
	a.Refresh(date(2025, time.January, 2))
	assert.Equal(t, types.AgreementStatusOngoing, a.AgreementStatus)
}

func TestAgreement_Validate(t *testing.T) {
	start := date(2025, time.January, 1)
	expiry := date(2026, time.January, 1)

	tests := []struct {
		name     string
		start    time.Time
		expiry   time.Time
		reminder time.Time
		wantErr  string
	}{
		{
			name:     "valid",
			start:    start,
			expiry:   expiry,
			reminder: date(2025, time.December, 1),
		},
		{
			name:     "expiry before start",
			start:    start,
			expiry:   date(2024, time.December, 31),
			reminder: date(2024, time.December, 1),
			wantErr:  "Expiry date must be after start date.",
		},
		{
			name:     "expiry equal to start",
			start:    start,
			expiry:   start,
			reminder: start,
			wantErr:  "Expiry date must be after start date.",
		},
		{
			name:     "reminder on start",
			start:    start,
			expiry:   expiry,
			reminder: start,
			wantErr:  "Reminder must be after start date.",
		},
		{
			name:     "reminder on expiry",
			start:    start,
			expiry:   expiry,
			reminder: expiry,
			wantErr:  "Reminder must be before expiry date.",
		},
		{
			name:    "missing dates",
			wantErr: "start and expiry dates are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Agreement{StartDate: tt.start, ExpiryDate: tt.expiry, ReminderTime: tt.reminder}
			err := a.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, ierr.IsValidation(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFormatAgreementID(t *testing.T) {
	assert.Equal(t, "A_2026_0001", FormatAgreementID(2026, 1))
	assert.Equal(t, "A_2026_0042", FormatAgreementID(2026, 42))
	assert.Equal(t, "A_2026_12345", FormatAgreementID(2026, 12345))
}

func TestSetAttachment(t *testing.T) {
	typeID := "agr_type_lease"
	a := &Agreement{AgreementTypeID: &typeID}

	a.SetAttachment("scans/Signed Lease.PDF")
	assert.Equal(t, "Signed Lease.PDF", a.OriginalFilename)
	assert.Regexp(t, `^agreements/agr_type_lease/att_[0-9A-Za-z]+\.pdf$`, a.AttachmentName)

	first := a.AttachmentName
	a.SetAttachment("scans/Signed Lease.PDF")
	assert.NotEqual(t, first, a.AttachmentName)

	untyped := &Agreement{}
	untyped.SetAttachment("notes")
	assert.Regexp(t, `^agreements/untyped/att_[0-9A-Za-z]+$`, untyped.AttachmentName)
}
