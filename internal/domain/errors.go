package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound is returned when no user owns the given token.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadySubmitted is returned when a user tries to submit a finalized quiz.
	ErrAlreadySubmitted = errors.New("quiz already submitted")
	// ErrNoQuestions indicates the user's quiz has no questions.
	ErrNoQuestions = errors.New("no questions found for this quiz")
	// ErrNoQuizID indicates the user record has no quiz assigned.
	ErrNoQuizID = errors.New("quiz id not found for this user")
	// ErrQuizMismatch is returned when a token asks for a quiz it is not assigned to.
	ErrQuizMismatch = errors.New("quiz not assigned to this user")
	// ErrPreconditionFailed is returned by stores when a conditional update does not apply.
	ErrPreconditionFailed = errors.New("precondition failed")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StorageError wraps a failure of a storage collaborator.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

// NotificationError wraps a report delivery failure.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string { return "deliver report: " + e.Err.Error() }

func (e *NotificationError) Unwrap() error { return e.Err }
