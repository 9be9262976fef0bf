package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"quiz-submission-service/internal/domain"
)

// EventStream is the stream proctoring events are appended to.
const EventStream = "quiz_user_events"

// EventStore appends events to a Redis stream, optionally capped at maxLen
// entries (approximate trimming).
type EventStore struct {
	client *redis.Client
	maxLen int64
}

func NewEventStore(client *redis.Client, maxLen int64) *EventStore {
	return &EventStore{client: client, maxLen: maxLen}
}

func (s *EventStore) RecordEvent(ctx context.Context, event domain.Event) error {
	args := &redis.XAddArgs{
		Stream: EventStream,
		Values: map[string]interface{}{
			"password":  event.Token,
			"username":  event.Username,
			"reason":    event.Reason,
			"timestamp": event.Timestamp,
		},
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}
	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}
