package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/papertrails/papertrails/internal/domain/sequence"
	ierr "github.com/papertrails/papertrails/internal/errors"
)

// InMemorySequenceStore implements sequence.Repository. A single mutex plays
// the part of the row lock.
type InMemorySequenceStore struct {
	mu       sync.Mutex
	counters map[string]*sequence.Counter

	// failures makes the next n increments fail with a concurrency error
	failures int
}

var _ sequence.Repository = (*InMemorySequenceStore)(nil)

func NewInMemorySequenceStore() *InMemorySequenceStore {
	return &InMemorySequenceStore{
		counters: make(map[string]*sequence.Counter),
	}
}

func (s *InMemorySequenceStore) IncrementAndGet(ctx context.Context, key sequence.ScopeKey) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failures > 0 {
		s.failures--
		return 0, ierr.NewError("could not obtain lock on sequence counter").
			WithReportableDetails(map[string]any{"scope_key": key.String()}).
			Mark(ierr.ErrConcurrency)
	}

	now := time.Now().UTC()
	counter, ok := s.counters[key.String()]
	if !ok {
		counter = &sequence.Counter{ScopeKey: key.String(), CreatedAt: now}
		s.counters[key.String()] = counter
	}
	counter.LastNumber++
	counter.UpdatedAt = now
	return counter.LastNumber, nil
}

func (s *InMemorySequenceStore) PeekNext(ctx context.Context, key sequence.ScopeKey) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if counter, ok := s.counters[key.String()]; ok {
		return counter.LastNumber + 1, nil
	}
	return 1, nil
}

func (s *InMemorySequenceStore) Get(ctx context.Context, key sequence.ScopeKey) (*sequence.Counter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counter, ok := s.counters[key.String()]
	if !ok {
		return nil, ierr.NewError("sequence counter not found").
			WithReportableDetails(map[string]any{"scope_key": key.String()}).
			Mark(ierr.ErrNotFound)
	}
	c := *counter
	return &c, nil
}

// Seed sets the last issued number of a scope
func (s *InMemorySequenceStore) Seed(key sequence.ScopeKey, last int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key.String()] = &sequence.Counter{ScopeKey: key.String(), LastNumber: last}
}

// FailNext makes the next n increments return a lock timeout
func (s *InMemorySequenceStore) FailNext(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = n
}

func (s *InMemorySequenceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters = make(map[string]*sequence.Counter)
	s.failures = 0
}
