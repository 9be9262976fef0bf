package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quiz-submission-service/internal/domain"
)

// QuestionLoader fetches a quiz's questions from the authoring store.
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, quizID string) ([]domain.Question, error)
}

// QuestionRepository keeps questions in a sorted set per quiz scored by
// order, so a range read returns them sorted:
//
//	ZADD quiz:{quizID}:questions {order} {question json}
//
// On a miss it falls back to the loader, if any, and fills the set with a
// TTL.
type QuestionRepository struct {
	client *redis.Client
	loader QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex
}

func NewQuestionRepository(client *redis.Client, loader QuestionLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestionRepository) QuestionsByQuiz(ctx context.Context, quizID string) ([]domain.Question, error) {
	questions, err := r.readSet(ctx, quizID)
	if err != nil || len(questions) > 0 || r.loader == nil {
		return questions, err
	}

	result, err, _ := r.sf.Do(quizID, func() (interface{}, error) {
		// Re-check in case another caller filled the set.
		questions, err := r.readSet(ctx, quizID)
		if err != nil || len(questions) > 0 {
			return questions, err
		}

		questions, err = r.loader.LoadQuestions(ctx, quizID)
		if err != nil {
			return nil, err
		}
		if len(questions) > 0 {
			// cache fill is best effort; the loaded questions are still served
			_ = r.writeSet(ctx, quizID, questions, r.ttlWithJitter())
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// PutQuestions replaces the quiz's question set without expiry.
func (r *QuestionRepository) PutQuestions(ctx context.Context, quizID string, questions []domain.Question) error {
	return r.writeSet(ctx, quizID, questions, 0)
}

func (r *QuestionRepository) readSet(ctx context.Context, quizID string) ([]domain.Question, error) {
	members, err := r.client.ZRange(ctx, r.key(quizID), 0, -1).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	questions := make([]domain.Question, 0, len(members))
	for _, m := range members {
		var q domain.Question
		if err := json.Unmarshal([]byte(m), &q); err != nil {
			return nil, fmt.Errorf("decode question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (r *QuestionRepository) writeSet(ctx context.Context, quizID string, questions []domain.Question, ttl time.Duration) error {
	key := r.key(quizID)
	members := make([]redis.Z, 0, len(questions))
	for _, q := range questions {
		q.QuizID = quizID
		data, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("encode question: %w", err)
		}
		members = append(members, redis.Z{Score: float64(q.Order), Member: string(data)})
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(members) > 0 {
		pipe.ZAdd(ctx, key, members...)
	}
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *QuestionRepository) key(quizID string) string {
	return "quiz:" + quizID + ":questions"
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
