package memory

import (
	"context"
	"sync"

	"quiz-submission-service/internal/domain"
)

// UserStore is an in-memory implementation of app.UserStore. Conditional
// updates are serialized by a single mutex.
type UserStore struct {
	mu             sync.Mutex
	users          map[string]domain.User
	maxResubmitted int
}

// NewUserStore keeps at most maxResubmitted audit entries per user; zero
// means unbounded.
func NewUserStore(maxResubmitted int, users ...domain.User) *UserStore {
	s := &UserStore{users: make(map[string]domain.User), maxResubmitted: maxResubmitted}
	for _, u := range users {
		s.users[u.Token] = cloneUser(u)
	}
	return s
}

// Put creates or replaces a user record.
func (s *UserStore) Put(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Token] = cloneUser(user)
}

func (s *UserStore) GetUser(_ context.Context, token string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[token]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (s *UserStore) UpdateUnsubmitted(_ context.Context, token string, update domain.UserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[token]
	if !ok {
		return domain.ErrUserNotFound
	}
	if user.IsSubmitted {
		return domain.ErrPreconditionFailed
	}
	if update.Answers != nil {
		user.Answers = cloneAnswers(update.Answers)
	}
	if update.Score != nil {
		user.Score = *update.Score
	}
	if update.Submit {
		user.IsSubmitted = true
	}
	s.users[token] = user
	return nil
}

func (s *UserStore) AppendResubmission(_ context.Context, token string, answers map[string]domain.AnswerValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[token]
	if !ok {
		return domain.ErrUserNotFound
	}
	attempts := append(user.ResubmissionAttempts, cloneAnswers(answers))
	if s.maxResubmitted > 0 && len(attempts) > s.maxResubmitted {
		attempts = attempts[len(attempts)-s.maxResubmitted:]
	}
	user.ResubmissionAttempts = attempts
	s.users[token] = user
	return nil
}

func cloneUser(u domain.User) domain.User {
	out := u
	if u.Answers != nil {
		out.Answers = cloneAnswers(u.Answers)
	}
	if u.ResubmissionAttempts != nil {
		out.ResubmissionAttempts = make([]map[string]domain.AnswerValue, len(u.ResubmissionAttempts))
		for i, a := range u.ResubmissionAttempts {
			out.ResubmissionAttempts[i] = cloneAnswers(a)
		}
	}
	return out
}

func cloneAnswers(in map[string]domain.AnswerValue) map[string]domain.AnswerValue {
	out := make(map[string]domain.AnswerValue, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
