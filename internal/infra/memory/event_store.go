package memory

import (
	"context"
	"sync"

	"quiz-submission-service/internal/domain"
)

// EventStore keeps events in insertion order.
type EventStore struct {
	mu     sync.Mutex
	events []domain.Event
}

func NewEventStore() *EventStore {
	return &EventStore{}
}

func (s *EventStore) RecordEvent(_ context.Context, event domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a snapshot of recorded events.
func (s *EventStore) Events() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Event(nil), s.events...)
}
