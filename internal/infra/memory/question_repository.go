package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"quiz-submission-service/internal/domain"
)

// QuestionLoader fetches a quiz's questions from the authoring store.
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, quizID string) ([]domain.Question, error)
}

// QuestionRepository caches question sets with TTL to avoid repeated DB hits.
// Empty sets are not cached.
type QuestionRepository struct {
	loader QuestionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex

	mu    sync.RWMutex
	cache map[string]cachedQuestions
}

type cachedQuestions struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewQuestionRepository(loader QuestionLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedQuestions),
	}
}

func (r *QuestionRepository) QuestionsByQuiz(ctx context.Context, quizID string) ([]domain.Question, error) {
	if qs, ok := r.cached(quizID); ok {
		return qs, nil
	}

	result, err, _ := r.sf.Do(quizID, func() (interface{}, error) {
		if qs, ok := r.cached(quizID); ok {
			return qs, nil
		}

		questions, err := r.loader.LoadQuestions(ctx, quizID)
		if err != nil {
			return nil, err
		}
		if len(questions) > 0 && r.ttl > 0 {
			r.mu.Lock()
			r.cache[quizID] = cachedQuestions{
				questions: questions,
				expiresAt: r.clock().Add(r.ttlWithJitter()),
			}
			r.mu.Unlock()
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return copyQuestions(result.([]domain.Question)), nil
}

func (r *QuestionRepository) cached(quizID string) ([]domain.Question, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[quizID]
	if !ok || !entry.expiresAt.After(r.clock()) {
		return nil, false
	}
	return copyQuestions(entry.questions), true
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

func copyQuestions(in []domain.Question) []domain.Question {
	return append([]domain.Question(nil), in...)
}

// StaticQuestionLoader serves questions from an in-memory slice (tests, demos).
type StaticQuestionLoader struct {
	byQuiz map[string][]domain.Question
}

func NewStaticQuestionLoader(questions []domain.Question) *StaticQuestionLoader {
	byQuiz := make(map[string][]domain.Question)
	for _, q := range questions {
		byQuiz[q.QuizID] = append(byQuiz[q.QuizID], q)
	}
	return &StaticQuestionLoader{byQuiz: byQuiz}
}

func (l *StaticQuestionLoader) LoadQuestions(_ context.Context, quizID string) ([]domain.Question, error) {
	return copyQuestions(l.byQuiz[quizID]), nil
}
