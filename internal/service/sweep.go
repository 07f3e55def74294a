package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/papertrails/papertrails/internal/api/dto"
	"github.com/papertrails/papertrails/internal/domain/agreement"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/sourcegraph/conc/pool"
)

const defaultSweepWorkers = 4

// SweepService is the daily agreement maintenance job
type SweepService interface {
	// Run marks overdue agreements Expired and evaluates today's reminder
	// for every agreement. Per agreement failures are counted, not returned.
	Run(ctx context.Context, today time.Time) (*dto.AgreementSweepResponse, error)
}

type sweepService struct {
	ServiceParams
	reminders ReminderService
}

func NewSweepService(params ServiceParams, reminders ReminderService) SweepService {
	return &sweepService{
		ServiceParams: params,
		reminders:     reminders,
	}
}

func (s *sweepService) Run(ctx context.Context, today time.Time) (*dto.AgreementSweepResponse, error) {
	today = types.TruncateToDay(today)
	start := time.Now()

	var expired int
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		var err error
		expired, err = s.AgreementRepo.MarkExpired(ctx, today)
		return err
	})
	if err != nil {
		return nil, err
	}

	agreements, err := s.AgreementRepo.List(ctx, types.NewNoLimitAgreementFilter())
	if err != nil {
		return nil, err
	}

	workers := s.Config.Sweep.Workers
	if workers <= 0 {
		workers = defaultSweepWorkers
	}

	var due, sent, failed atomic.Int64
	p := pool.New().WithContext(ctx).WithMaxGoroutines(workers)
	for _, a := range agreements {
		p.Go(func(ctx context.Context) error {
			s.sweepOne(ctx, a, today, &due, &sent, &failed)
			return nil
		})
	}
	_ = p.Wait()

	resp := &dto.AgreementSweepResponse{
		Date:             today.Format(types.DateLayout),
		Total:            len(agreements),
		MarkedExpired:    expired,
		RemindersDue:     int(due.Load()),
		RemindersSent:    int(sent.Load()),
		RemindersSkipped: int(due.Load() - sent.Load() - failed.Load()),
		Failed:           int(failed.Load()),
	}

	s.Logger.Infow("agreement sweep finished",
		"date", resp.Date,
		"total", resp.Total,
		"marked_expired", resp.MarkedExpired,
		"reminders_sent", resp.RemindersSent,
		"failed", resp.Failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

func (s *sweepService) sweepOne(ctx context.Context, a *agreement.Agreement, today time.Time, due, sent, failed *atomic.Int64) {
	reminder, published, err := s.reminders.Evaluate(ctx, a, today)
	if reminder.IsDue() {
		due.Add(1)
	}
	switch {
	case err != nil:
		failed.Add(1)
		s.Logger.Errorw("sweep failed to publish reminder",
			"agreement_id", a.ID,
			"kind", reminder.Kind,
			"error", err,
		)
	case published:
		sent.Add(1)
	}
}
