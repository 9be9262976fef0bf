package app

import (
	"context"

	"quiz-submission-service/internal/domain"
)

// UserStore abstracts the key-value store holding user records keyed by token.
type UserStore interface {
	// GetUser returns domain.ErrUserNotFound for unknown tokens.
	GetUser(ctx context.Context, token string) (domain.User, error)
	// UpdateUnsubmitted applies update only while is_submitted is false (or
	// absent) and returns domain.ErrPreconditionFailed otherwise. Setting
	// Submit flips the flag in the same atomic write.
	UpdateUnsubmitted(ctx context.Context, token string, update domain.UserUpdate) error
	// AppendResubmission records a rejected attempt on the user's audit list.
	AppendResubmission(ctx context.Context, token string, answers map[string]domain.AnswerValue) error
}

// QuestionRepository loads the question set of a quiz.
type QuestionRepository interface {
	QuestionsByQuiz(ctx context.Context, quizID string) ([]domain.Question, error)
}

// EventStore persists proctoring events.
type EventStore interface {
	RecordEvent(ctx context.Context, event domain.Event) error
}

// Notifier delivers rendered reports.
type Notifier interface {
	SendReport(ctx context.Context, user domain.User, report string) error
}
