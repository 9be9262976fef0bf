package app

import (
	"errors"
	"log/slog"

	"quiz-submission-service/internal/domain"
)

var errNoNotifier = errors.New("no notifier configured")

// wrapStorage passes domain errors through and wraps everything else in a
// StorageError after logging the detail.
func wrapStorage(logger *slog.Logger, op string, err error) error {
	if isDomainErr(err) {
		return err
	}
	logger.Error("storage failure", "op", op, "error", err)
	return &domain.StorageError{Op: op, Err: err}
}

func isDomainErr(err error) bool {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrAlreadySubmitted),
		errors.Is(err, domain.ErrNoQuestions),
		errors.Is(err, domain.ErrNoQuizID),
		errors.Is(err, domain.ErrQuizMismatch):
		return true
	}
	var ve *domain.ValidationError
	return errors.As(err, &ve)
}
