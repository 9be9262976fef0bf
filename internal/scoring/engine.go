package scoring

import (
	"sort"

	"quiz-submission-service/internal/domain"
)

// Result is the outcome of scoring one attempt.
type Result struct {
	Score         int
	TotalPossible int
	Questions     []domain.QuestionResult
}

// Score grades answers against every question of a quiz. Unanswered
// questions earn nothing but still count toward TotalPossible.
func Score(questions []domain.Question, answers map[string]domain.AnswerValue) Result {
	ordered := SortByOrder(questions)

	res := Result{Questions: make([]domain.QuestionResult, 0, len(ordered))}
	for _, q := range ordered {
		var submitted *domain.AnswerValue
		if a, ok := answers[q.Ref()]; ok {
			submitted = &a
		}

		qr := domain.QuestionResult{
			Order:    q.Order,
			Text:     q.Text,
			Options:  q.Options,
			Answered: submitted != nil,
			Selected: Display(Normalize(submitted)),
			Correct:  Display(domain.NewOptionSet(q.CorrectOptions...)),
			Marks:    q.Marks,
		}
		// An empty option list cannot hold a correct answer.
		if len(q.Options) > 0 && IsCorrect(submitted, q.CorrectOptions) {
			qr.IsRight = true
			qr.Awarded = q.Marks
		}

		res.TotalPossible += q.Marks
		res.Score += qr.Awarded
		res.Questions = append(res.Questions, qr)
	}
	return res
}

// SortByOrder returns a copy of questions in ascending order.
func SortByOrder(questions []domain.Question) []domain.Question {
	out := append([]domain.Question{}, questions...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
