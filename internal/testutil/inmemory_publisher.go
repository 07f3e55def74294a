package testutil

import (
	"context"
	"sync"

	"github.com/papertrails/papertrails/internal/notification/publisher"
	"github.com/papertrails/papertrails/internal/types"
)

// PublishedEvent is one call to the in-memory publisher
type PublishedEvent struct {
	EventName string
	Payload   types.AgreementEventPayload
}

// InMemoryNotificationPublisher records published agreement events
type InMemoryNotificationPublisher struct {
	mu     sync.RWMutex
	events []PublishedEvent
	err    error
}

var _ publisher.NotificationPublisher = (*InMemoryNotificationPublisher)(nil)

func NewInMemoryNotificationPublisher() *InMemoryNotificationPublisher {
	return &InMemoryNotificationPublisher{}
}

func (p *InMemoryNotificationPublisher) Publish(ctx context.Context, eventName string, payload *types.AgreementEventPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, PublishedEvent{EventName: eventName, Payload: *payload})
	return nil
}

func (p *InMemoryNotificationPublisher) Close() error {
	return nil
}

// FailWith makes every following Publish return err, nil restores success
func (p *InMemoryNotificationPublisher) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// Events returns every recorded event
func (p *InMemoryNotificationPublisher) Events() []PublishedEvent {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]PublishedEvent(nil), p.events...)
}

// EventsNamed returns the recorded events with the given name
func (p *InMemoryNotificationPublisher) EventsNamed(eventName string) []PublishedEvent {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []PublishedEvent
	for _, e := range p.events {
		if e.EventName == eventName {
			out = append(out, e)
		}
	}
	return out
}

func (p *InMemoryNotificationPublisher) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
	p.err = nil
}
