package app

import (
	"context"
	"log/slog"
	"time"

	"quiz-submission-service/internal/domain"
	"quiz-submission-service/internal/scoring"
)

// Identity is what a token resolves to.
type Identity struct {
	Username string `json:"username"`
	QuizID   string `json:"quiz_id"`
}

// AccessService covers token lookup, question listing and event logging.
type AccessService struct {
	users     UserStore
	questions QuestionRepository
	events    EventStore
	logger    *slog.Logger
}

func NewAccessService(users UserStore, questions QuestionRepository, events EventStore, logger *slog.Logger) *AccessService {
	return &AccessService{users: users, questions: questions, events: events, logger: logger}
}

// Authenticate resolves a token to the user's name and quiz.
func (s *AccessService) Authenticate(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, domain.NewValidationError("password", "password is required")
	}
	user, err := s.users.GetUser(ctx, token)
	if err != nil {
		return Identity{}, wrapStorage(s.logger, "get user", err)
	}
	return Identity{Username: user.Username, QuizID: user.QuizID}, nil
}

// ListQuestions returns the quiz questions without their answer keys.
func (s *AccessService) ListQuestions(ctx context.Context, token, quizID string) ([]domain.PublicQuestion, error) {
	if quizID == "" {
		return nil, domain.NewValidationError("quiz_id", "quiz_id is required")
	}
	if token == "" {
		return nil, domain.NewValidationError("password", "password is required")
	}
	user, err := s.users.GetUser(ctx, token)
	if err != nil {
		return nil, wrapStorage(s.logger, "get user", err)
	}
	if user.QuizID != quizID {
		return nil, domain.ErrQuizMismatch
	}

	questions, err := s.questions.QuestionsByQuiz(ctx, quizID)
	if err != nil {
		return nil, wrapStorage(s.logger, "load questions", err)
	}
	if len(questions) == 0 {
		return nil, domain.ErrNoQuestions
	}

	ordered := scoring.SortByOrder(questions)
	out := make([]domain.PublicQuestion, 0, len(ordered))
	for _, q := range ordered {
		marks := q.Marks
		if marks == 0 {
			marks = 1
		}
		options := q.Options
		if options == nil {
			options = []string{}
		}
		out = append(out, domain.PublicQuestion{
			ID:             q.Ref(),
			Order:          q.Order,
			Text:           q.Text,
			Options:        options,
			Marks:          marks,
			MultipleChoice: q.MultipleChoice,
		})
	}
	return out, nil
}

// RecordEvent stores a proctoring event for a known user.
func (s *AccessService) RecordEvent(ctx context.Context, token, reason, timestamp string) error {
	if token == "" || reason == "" || timestamp == "" {
		return domain.NewValidationError("", "missing required fields: password, reason, or timestamp")
	}
	if _, err := time.Parse(time.RFC3339Nano, timestamp); err != nil {
		return domain.NewValidationError("timestamp", "invalid timestamp format, use ISO 8601")
	}

	user, err := s.users.GetUser(ctx, token)
	if err != nil {
		return wrapStorage(s.logger, "get user", err)
	}

	event := domain.Event{
		Token:     token,
		Username:  user.Username,
		Reason:    reason,
		Timestamp: timestamp,
	}
	if err := s.events.RecordEvent(ctx, event); err != nil {
		return wrapStorage(s.logger, "record event", err)
	}
	s.logger.DebugContext(ctx, "event recorded", "username", user.Username, "reason", reason)
	return nil
}
