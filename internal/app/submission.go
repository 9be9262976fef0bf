package app

import (
	"context"
	"errors"
	"log/slog"

	"quiz-submission-service/internal/domain"
	"quiz-submission-service/internal/scoring"
)

// SubmissionService scores a user's answers exactly once.
type SubmissionService struct {
	users     UserStore
	questions QuestionRepository
	logger    *slog.Logger
}

func NewSubmissionService(users UserStore, questions QuestionRepository, logger *slog.Logger) *SubmissionService {
	return &SubmissionService{users: users, questions: questions, logger: logger}
}

// SubmitAnswers stores answers, scores them and finalizes the user. A user
// that has already submitted gets domain.ErrAlreadySubmitted and the attempt
// is appended to the audit list instead.
func (s *SubmissionService) SubmitAnswers(ctx context.Context, token string, answers map[string]domain.AnswerValue) (int, error) {
	if token == "" {
		return 0, domain.NewValidationError("password", "password is required")
	}
	if len(answers) == 0 {
		return 0, domain.NewValidationError("answers", "answers are required")
	}

	user, err := s.users.GetUser(ctx, token)
	if err != nil {
		return 0, s.storageErr("get user", err)
	}

	if user.IsSubmitted {
		s.recordResubmission(ctx, user, answers)
		return 0, domain.ErrAlreadySubmitted
	}

	if err := s.users.UpdateUnsubmitted(ctx, token, domain.UserUpdate{Answers: answers}); err != nil {
		if errors.Is(err, domain.ErrPreconditionFailed) {
			// Another submission finalized between our read and this write.
			s.recordResubmission(ctx, user, answers)
			return 0, domain.ErrAlreadySubmitted
		}
		return 0, s.storageErr("save answers", err)
	}

	questions, err := s.questions.QuestionsByQuiz(ctx, user.QuizID)
	if err != nil {
		return 0, s.storageErr("load questions", err)
	}
	if len(questions) == 0 {
		return 0, domain.ErrNoQuestions
	}

	res := scoring.Score(questions, answers)

	// Answers are written again with the score so the finalized record
	// always pairs the score with the answers it was computed from.
	err = s.users.UpdateUnsubmitted(ctx, token, domain.UserUpdate{
		Answers: answers,
		Score:   &res.Score,
		Submit:  true,
	})
	if errors.Is(err, domain.ErrPreconditionFailed) {
		s.logger.InfoContext(ctx, "lost submission race", "quiz_id", user.QuizID, "username", user.Username)
		s.recordResubmission(ctx, user, answers)
		return 0, domain.ErrAlreadySubmitted
	}
	if err != nil {
		return 0, s.storageErr("finalize submission", err)
	}

	s.logger.InfoContext(ctx, "quiz submitted",
		"quiz_id", user.QuizID,
		"username", user.Username,
		"score", res.Score,
		"total_possible", res.TotalPossible)
	return res.Score, nil
}

// recordResubmission is best effort; failures are logged only.
func (s *SubmissionService) recordResubmission(ctx context.Context, user domain.User, answers map[string]domain.AnswerValue) {
	if err := s.users.AppendResubmission(ctx, user.Token, answers); err != nil {
		s.logger.WarnContext(ctx, "failed to record resubmission attempt",
			"quiz_id", user.QuizID,
			"username", user.Username,
			"error", err)
		return
	}
	s.logger.InfoContext(ctx, "resubmission rejected", "quiz_id", user.QuizID, "username", user.Username)
}

func (s *SubmissionService) storageErr(op string, err error) error {
	return wrapStorage(s.logger, op, err)
}
