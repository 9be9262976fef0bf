package redis

import (
	"context"
	"errors"
	"sync"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"quiz-submission-service/internal/domain"
)

func TestUserStoreRoundTrip(t *testing.T) {
	mr, client := startRedis(t)
	ctx := context.Background()
	store := NewUserStore(client, 0)

	if err := store.PutUser(ctx, domain.User{Token: "12345", Username: "Auxilin", QuizID: "final"}); err != nil {
		t.Fatalf("put user: %v", err)
	}
	if !mr.Exists("users:12345") {
		t.Fatalf("expected user hash to be written")
	}

	user, err := store.GetUser(ctx, "12345")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.Username != "Auxilin" || user.QuizID != "final" || user.IsSubmitted {
		t.Fatalf("unexpected user %+v", user)
	}

	if _, err := store.GetUser(ctx, "unknown"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserStoreCompareAndSet(t *testing.T) {
	mr, client := startRedis(t)
	ctx := context.Background()
	store := NewUserStore(client, 0)
	_ = store.PutUser(ctx, domain.User{Token: "12345", Username: "Auxilin", QuizID: "final"})

	score := 3
	answers := map[string]domain.AnswerValue{"q2": domain.Multi(1, 2), "q5": domain.Single(2)}
	if err := store.UpdateUnsubmitted(ctx, "12345", domain.UserUpdate{Answers: answers, Score: &score, Submit: true}); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if got := mr.HGet("users:12345", "answers"); got != `{"q2":[1,2],"q5":2}` {
		t.Fatalf("unexpected stored answers %s", got)
	}
	if got := mr.HGet("users:12345", "is_submitted"); got != "true" {
		t.Fatalf("expected is_submitted true, got %q", got)
	}

	other := 0
	err := store.UpdateUnsubmitted(ctx, "12345", domain.UserUpdate{Score: &other, Submit: true})
	if !errors.Is(err, domain.ErrPreconditionFailed) {
		t.Fatalf("expected precondition failure, got %v", err)
	}
	if got := mr.HGet("users:12345", "marks"); got != "3" {
		t.Fatalf("expected marks to stay 3, got %q", got)
	}

	if err := store.UpdateUnsubmitted(ctx, "ghost", domain.UserUpdate{Submit: true}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if mr.Exists("users:ghost") {
		t.Fatalf("conditional update must not create users")
	}
}

func TestUserStoreConcurrentFinalizeOnce(t *testing.T) {
	_, client := startRedis(t)
	ctx := context.Background()
	store := NewUserStore(client, 0)
	_ = store.PutUser(ctx, domain.User{Token: "12345", QuizID: "final"})

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			err := store.UpdateUnsubmitted(ctx, "12345", domain.UserUpdate{Score: &score, Submit: true})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
}

func TestUserStoreResubmissionsCapped(t *testing.T) {
	mr, client := startRedis(t)
	ctx := context.Background()
	store := NewUserStore(client, 2)
	_ = store.PutUser(ctx, domain.User{Token: "12345", QuizID: "final", IsSubmitted: true})

	for i := 0; i < 3; i++ {
		if err := store.AppendResubmission(ctx, "12345", map[string]domain.AnswerValue{"q5": domain.Single(i)}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	list, err := mr.List("users:12345:resubmission_attempts")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0] != `{"q5":1}` {
		t.Fatalf("expected newest two attempts, got %v", list)
	}

	user, err := store.GetUser(ctx, "12345")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if len(user.ResubmissionAttempts) != 2 {
		t.Fatalf("expected 2 attempts on record, got %d", len(user.ResubmissionAttempts))
	}

	if err := store.AppendResubmission(ctx, "ghost", nil); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func startRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}
