package email

import (
	"context"
	"errors"
	"sync"

	"github.com/papertrails/papertrails/internal/config"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/time/rate"
)

// Sender delivers a message to each of its recipients
type Sender interface {
	Send(ctx context.Context, msg Message) (*DeliveryResult, error)
}

type mailer struct {
	client      *EmailClient
	limiter     *rate.Limiter
	concurrency int
	logger      *logger.Logger
}

// NewSender returns a Sender that throttles and fans out sends over the resend client
func NewSender(client *EmailClient, cfg *config.Configuration, logger *logger.Logger) Sender {
	perSecond := cfg.Email.RatePerSecond
	if perSecond <= 0 {
		perSecond = 2
	}

	return &mailer{
		client:      client,
		limiter:     rate.NewLimiter(rate.Limit(perSecond), 1),
		concurrency: lo.Max([]int{cfg.Email.Concurrency, 1}),
		logger:      logger,
	}
}

func (m *mailer) Send(ctx context.Context, msg Message) (*DeliveryResult, error) {
	to := lo.Uniq(lo.Compact(msg.To))
	result := &DeliveryResult{Failed: make(map[string]error)}

	if len(to) == 0 {
		return result, nil
	}

	if !m.client.IsEnabled() {
		m.logger.Warnw("email client is disabled, skipping email send",
			"to", to,
			"subject", msg.Subject,
		)
		return result, nil
	}

	var mu sync.Mutex
	p := pool.New().WithMaxGoroutines(m.concurrency)
	for _, address := range to {
		p.Go(func() {
			err := m.limiter.Wait(ctx)
			if err == nil {
				var messageID string
				messageID, err = m.client.SendEmail(ctx, address, msg.Subject, msg.HTML, msg.Text)
				if err == nil {
					m.logger.Debugw("email sent", "to", address, "message_id", messageID)
				}
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed[address] = err
				return
			}
			result.Sent = append(result.Sent, address)
		})
	}
	p.Wait()

	if len(result.Failed) == 0 {
		return result, nil
	}

	return result, ierr.WithError(errors.Join(lo.Values(result.Failed)...)).
		WithHintf("Failed to deliver %d of %d emails", len(result.Failed), len(to)).
		WithReportableDetails(map[string]any{
			"subject": msg.Subject,
			"failed":  lo.Keys(result.Failed),
		}).
		Mark(ierr.ErrNotification)
}
