package service

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	ierr "github.com/papertrails/papertrails/internal/errors"
)

const (
	defaultAllocationRetries  = 3
	defaultAllocationInterval = 50 * time.Millisecond
)

// withAllocationRetry runs fn in a transaction and reruns the whole
// transaction when a counter row could not be locked. Postgres aborts the
// transaction on a lock failure so retrying only the increment is not possible.
func (p *ServiceParams) withAllocationRetry(ctx context.Context, fn func(context.Context) error) error {
	maxRetries := p.Config.Sequence.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultAllocationRetries
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = defaultAllocationInterval
	if p.Config.Sequence.InitialInterval > 0 {
		b.InitialInterval = p.Config.Sequence.InitialInterval
	}

	attempt := 0
	operation := func() error {
		attempt++
		err := p.DB.WithTx(ctx, fn)
		if err == nil {
			return nil
		}
		if !ierr.IsConcurrency(err) {
			return backoff.Permanent(err)
		}

		p.Logger.Warnw("sequence allocation contended, retrying",
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)
		return err
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, maxRetries), ctx))
	if err != nil && ierr.IsConcurrency(err) {
		return ierr.WithError(err).
			WithHint("The system is busy, please try again").
			WithReportableDetails(map[string]any{
				"attempts": attempt,
			}).
			Mark(ierr.ErrConcurrency)
	}
	return err
}
