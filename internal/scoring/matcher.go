// Package scoring holds the pure answer matching, scoring and report
// rendering logic shared by submission and reporting.
package scoring

import "quiz-submission-service/internal/domain"

// Normalize turns a submitted answer into a set. A missing answer is the
// empty set.
func Normalize(submitted *domain.AnswerValue) domain.OptionSet {
	if submitted == nil {
		return domain.OptionSet{}
	}
	return domain.NewOptionSet(submitted.Indices()...)
}

// IsCorrect reports whether the submitted answer exactly matches the
// correct set. There is no partial credit, and an empty correct set never
// matches. The question's multiple_choice flag plays no part.
func IsCorrect(submitted *domain.AnswerValue, correct domain.OptionSet) bool {
	if len(correct) == 0 {
		return false
	}
	return Normalize(submitted).Equal(domain.NewOptionSet(correct...))
}

// Display converts stored 0-indexed options to sorted 1-indexed numbers.
func Display(set domain.OptionSet) []int {
	out := make([]int, len(set))
	for i, n := range set {
		out[i] = n + 1
	}
	return out
}
