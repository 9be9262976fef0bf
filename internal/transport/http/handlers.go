package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"quiz-submission-service/internal/app"
	"quiz-submission-service/internal/domain"
)

// Handler serves the JSON endpoints.
type Handler struct {
	access      *app.AccessService
	submissions *app.SubmissionService
	reports     *app.ReportService
	validate    *validator.Validate
	logger      *slog.Logger
}

func NewHandler(access *app.AccessService, submissions *app.SubmissionService, reports *app.ReportService, logger *slog.Logger) *Handler {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{access: access, submissions: submissions, reports: reports, validate: v, logger: logger}
}

type tokenRequest struct {
	Password string `json:"password" validate:"required"`
}

type questionsRequest struct {
	Password string `json:"password" validate:"required"`
	QuizID   string `json:"quiz_id" validate:"required"`
}

type submitRequest struct {
	Password string                        `json:"password" validate:"required"`
	Answers  map[string]domain.AnswerValue `json:"answers" validate:"required,min=1"`
}

type eventRequest struct {
	Password  string `json:"password" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
	Timestamp string `json:"timestamp" validate:"required"`
}

type reportRequest struct {
	Password string `json:"password" validate:"required"`
	Email    bool   `json:"email"`
}

type submitResponse struct {
	Score int `json:"score"`
}

type questionsResponse struct {
	Questions []domain.PublicQuestion `json:"questions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Authenticate resolves a token to username and quiz id.
func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !h.decode(w, r, &req) {
		return
	}
	id, err := h.access.Authenticate(r.Context(), req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, id)
}

// Questions lists the quiz questions without answer keys.
func (h *Handler) Questions(w http.ResponseWriter, r *http.Request) {
	var req questionsRequest
	if !h.decode(w, r, &req) {
		return
	}
	qs, err := h.access.ListQuestions(r.Context(), req.Password, req.QuizID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, questionsResponse{Questions: qs})
}

// Submit scores a user's answers.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !h.decode(w, r, &req) {
		return
	}
	score, err := h.submissions.SubmitAnswers(r.Context(), req.Password, req.Answers)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{Score: score})
}

// Events records a proctoring event and answers 204.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.access.RecordEvent(r.Context(), req.Password, req.Reason, req.Timestamp); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Report renders, and optionally emails, the user's report.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if !h.decode(w, r, &req) {
		return
	}
	report, err := h.reports.GenerateReport(r.Context(), req.Password, req.Email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON in request body"})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			h.writeError(w, r, domain.NewValidationError(verrs[0].Field(), validationMessage(verrs[0])))
			return false
		}
		h.writeError(w, r, err)
		return false
	}
	return true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "min":
		return fe.Field() + " is required"
	default:
		return fe.Field() + " is invalid"
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path,
			"request_id", RequestID(r.Context()),
			"error", err)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps domain errors to status codes. Unknown errors never leak
// their text.
func statusFor(err error) (int, string) {
	var (
		ve *domain.ValidationError
		ne *domain.NotificationError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error()
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNoQuestions):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrNoQuizID):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrQuizMismatch):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrAlreadySubmitted):
		return http.StatusConflict, err.Error()
	case errors.As(err, &ne):
		return http.StatusBadGateway, "report generated but delivery failed"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
