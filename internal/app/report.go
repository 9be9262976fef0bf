package app

import (
	"context"
	"log/slog"

	"quiz-submission-service/internal/domain"
	"quiz-submission-service/internal/scoring"
)

// QuizReport is the outcome of GenerateReport.
type QuizReport struct {
	Text          string                  `json:"report"`
	Username      string                  `json:"username"`
	QuizID        string                  `json:"quiz_id"`
	Score         int                     `json:"marks"`
	TotalPossible int                     `json:"total_marks"`
	IsSubmitted   bool                    `json:"is_submitted"`
	Questions     []domain.QuestionResult `json:"-"`
}

// ReportService renders transcripts of a user's attempt.
type ReportService struct {
	users     UserStore
	questions QuestionRepository
	notifier  Notifier
	logger    *slog.Logger
}

func NewReportService(users UserStore, questions QuestionRepository, notifier Notifier, logger *slog.Logger) *ReportService {
	return &ReportService{users: users, questions: questions, notifier: notifier, logger: logger}
}

// GenerateReport renders the report for token. When deliver is set the
// report is also sent through the notifier and a delivery failure is
// returned as a *domain.NotificationError alongside the report.
func (s *ReportService) GenerateReport(ctx context.Context, token string, deliver bool) (QuizReport, error) {
	if token == "" {
		return QuizReport{}, domain.NewValidationError("password", "password is required")
	}

	user, err := s.users.GetUser(ctx, token)
	if err != nil {
		return QuizReport{}, wrapStorage(s.logger, "get user", err)
	}
	if user.QuizID == "" {
		return QuizReport{}, domain.ErrNoQuizID
	}

	questions, err := s.questions.QuestionsByQuiz(ctx, user.QuizID)
	if err != nil {
		return QuizReport{}, wrapStorage(s.logger, "load questions", err)
	}
	if len(questions) == 0 {
		return QuizReport{}, domain.ErrNoQuestions
	}

	rendered := scoring.Render(user, questions)
	report := QuizReport{
		Text:          rendered.Text,
		Username:      user.Username,
		QuizID:        user.QuizID,
		Score:         user.Score,
		TotalPossible: rendered.Result.TotalPossible,
		IsSubmitted:   user.IsSubmitted,
		Questions:     rendered.Result.Questions,
	}
	if user.IsSubmitted && user.Score != rendered.Result.Score {
		s.logger.WarnContext(ctx, "stored score differs from recomputed score",
			"quiz_id", user.QuizID,
			"username", user.Username,
			"stored", user.Score,
			"recomputed", rendered.Result.Score)
	}

	if !deliver {
		return report, nil
	}
	if s.notifier == nil {
		return report, &domain.NotificationError{Err: errNoNotifier}
	}
	if err := s.notifier.SendReport(ctx, user, report.Text); err != nil {
		s.logger.ErrorContext(ctx, "report delivery failed", "quiz_id", user.QuizID, "username", user.Username, "error", err)
		return report, &domain.NotificationError{Err: err}
	}
	s.logger.InfoContext(ctx, "report delivered", "quiz_id", user.QuizID, "username", user.Username)
	return report, nil
}
