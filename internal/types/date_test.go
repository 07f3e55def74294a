package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ist = time.FixedZone("IST", 5*60*60+30*60)

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want int
	}{
		{
			name: "same day",
			a:    time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2026, time.January, 12, 23, 59, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "thirty days before expiry",
			a:    time.Date(2025, time.December, 13, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC),
			want: 30,
		},
		{
			name: "past date is negative",
			a:    time.Date(2026, time.February, 11, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC),
			want: -30,
		},
		{
			name: "time of day is ignored",
			a:    time.Date(2026, time.March, 1, 22, 0, 0, 0, time.UTC),
			b:    time.Date(2026, time.March, 2, 1, 0, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "leap year february",
			a:    time.Date(2028, time.February, 28, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2028, time.March, 1, 0, 0, 0, 0, time.UTC),
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.a, tt.b))
		})
	}
}

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2026, time.June, 1, 15, 4, 5, 6, ist)
	got := TruncateToDay(in)

	assert.Equal(t, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), got)
	assert.True(t, SameDay(in, got))
	assert.False(t, SameDay(got, got.AddDate(0, 0, 1)))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-01-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC), got)

	for _, bad := range []string{"", "12/01/2026", "2026-13-01", "2026-02-30", "not-a-date"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}
