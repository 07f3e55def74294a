package testutil

import (
	"context"
	"sync"

	"github.com/papertrails/papertrails/internal/email"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/samber/lo"
)

// MockEmailSender records messages instead of delivering them
type MockEmailSender struct {
	mu       sync.Mutex
	messages []email.Message
	// failing addresses are reported as failed deliveries
	failing map[string]error
}

var _ email.Sender = (*MockEmailSender)(nil)

func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{failing: make(map[string]error)}
}

func (m *MockEmailSender) Send(ctx context.Context, msg email.Message) (*email.DeliveryResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = append(m.messages, msg)

	result := &email.DeliveryResult{Failed: make(map[string]error)}
	for _, to := range lo.Uniq(lo.Compact(msg.To)) {
		if err, ok := m.failing[to]; ok {
			result.Failed[to] = err
			continue
		}
		result.Sent = append(result.Sent, to)
	}

	if len(result.Failed) > 0 {
		return result, ierr.NewError("email delivery failed").
			WithHintf("Failed to deliver %d emails", len(result.Failed)).
			Mark(ierr.ErrNotification)
	}
	return result, nil
}

// FailFor makes deliveries to address fail with err
func (m *MockEmailSender) FailFor(address string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failing[address] = err
}

// Messages returns every message handed to Send
func (m *MockEmailSender) Messages() []email.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]email.Message(nil), m.messages...)
}

func (m *MockEmailSender) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
	m.failing = make(map[string]error)
}
