package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/papertrails/papertrails/internal/api/dto"
	"github.com/papertrails/papertrails/internal/config"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/sentry"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSweep struct {
	err  error
	runs []time.Time
}

func (f *fakeSweep) Run(_ context.Context, today time.Time) (*dto.AgreementSweepResponse, error) {
	f.runs = append(f.runs, today)
	return &dto.AgreementSweepResponse{}, f.err
}

func newTestScheduler(sweep *fakeSweep, mutate func(*config.Configuration)) *Scheduler {
	cfg := config.GetDefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	log := logger.NewNopLogger()
	return NewScheduler(cfg, sweep, log, sentry.NewSentryService(cfg, log))
}

func TestStart_Disabled(t *testing.T) {
	s := newTestScheduler(&fakeSweep{}, func(c *config.Configuration) { c.Sweep.Enabled = false })
	require.NoError(t, s.Start())
	assert.Empty(t, s.cron.Entries())
}

func TestStart_InvalidSchedule(t *testing.T) {
	s := newTestScheduler(&fakeSweep{}, func(c *config.Configuration) { c.Sweep.Schedule = "every day" })
	assert.Error(t, s.Start())
}

func TestStart_DefaultSchedule(t *testing.T) {
	s := newTestScheduler(&fakeSweep{}, func(c *config.Configuration) { c.Sweep.Schedule = "" })
	require.NoError(t, s.Start())
	defer s.Stop()

	require.Len(t, s.cron.Entries(), 1)
	next := s.cron.Entries()[0].Schedule.Next(time.Date(2026, time.March, 15, 7, 0, 0, 0, time.Local))
	assert.Equal(t, time.Date(2026, time.March, 16, 6, 0, 0, 0, time.Local), next)
}

func TestRunSweep(t *testing.T) {
	sweep := &fakeSweep{err: errors.New("database unavailable")}
	s := newTestScheduler(sweep, nil)

	s.runSweep()
	require.Len(t, sweep.runs, 1)
	assert.Equal(t, types.Today(), sweep.runs[0])
}
