package scheduler

import (
	"context"
	"time"

	"github.com/papertrails/papertrails/internal/config"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/sentry"
	"github.com/papertrails/papertrails/internal/service"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/robfig/cron"
	"go.uber.org/fx"
)

// DefaultSweepSchedule runs the agreement sweep at 06:00 every day.
// Fields are seconds, minutes, hours, day of month, month, day of week.
const DefaultSweepSchedule = "0 0 6 * * *"

const sweepTimeout = 30 * time.Minute

// Scheduler triggers the daily agreement sweep
type Scheduler struct {
	cron   *cron.Cron
	sweep  service.SweepService
	config *config.SweepConfig
	logger *logger.Logger
	sentry *sentry.Service
}

func NewScheduler(cfg *config.Configuration, sweep service.SweepService, logger *logger.Logger, sentry *sentry.Service) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		sweep:  sweep,
		config: &cfg.Sweep,
		logger: logger,
		sentry: sentry,
	}
}

// Start registers the sweep and starts the cron loop. A disabled sweep is a no-op.
func (s *Scheduler) Start() error {
	if !s.config.Enabled {
		s.logger.Info("agreement sweep disabled")
		return nil
	}

	schedule := s.config.Schedule
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}

	if err := s.cron.AddFunc(schedule, s.runSweep); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Infow("agreement sweep scheduled", "schedule", schedule)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	span, ctx := s.sentry.StartTransaction(ctx, "cron.agreement_sweep")
	defer sentry.FinishSpan(span)

	if _, err := s.sweep.Run(ctx, types.Today()); err != nil {
		s.logger.Errorw("scheduled agreement sweep failed", "error", err)
		s.sentry.CaptureException(err)
	}
}

// RegisterHooks ties the scheduler to the application lifecycle
func RegisterHooks(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Start()
		},
		OnStop: func(ctx context.Context) error {
			s.Stop()
			return nil
		},
	})
}
