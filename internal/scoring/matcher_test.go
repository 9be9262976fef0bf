package scoring

import (
	"testing"

	"quiz-submission-service/internal/domain"
)

func TestIsCorrect(t *testing.T) {
	multi := func(xs ...int) *domain.AnswerValue { v := domain.Multi(xs...); return &v }
	single := func(x int) *domain.AnswerValue { v := domain.Single(x); return &v }

	tests := []struct {
		name      string
		submitted *domain.AnswerValue
		correct   domain.OptionSet
		want      bool
	}{
		{name: "exact multi", submitted: multi(1, 2), correct: domain.NewOptionSet(1, 2), want: true},
		{name: "order independent", submitted: multi(2, 1), correct: domain.NewOptionSet(1, 2), want: true},
		{name: "duplicates collapse", submitted: multi(2, 1, 2), correct: domain.NewOptionSet(1, 2), want: true},
		{name: "partial overlap", submitted: multi(1), correct: domain.NewOptionSet(1, 2), want: false},
		{name: "superset", submitted: multi(0, 1, 2), correct: domain.NewOptionSet(1, 2), want: false},
		{name: "scalar single", submitted: single(2), correct: domain.NewOptionSet(2), want: true},
		{name: "scalar wrong", submitted: single(1), correct: domain.NewOptionSet(2), want: false},
		{name: "list for single choice", submitted: multi(2), correct: domain.NewOptionSet(2), want: true},
		{name: "scalar for multi choice", submitted: single(1), correct: domain.NewOptionSet(1, 2), want: false},
		{name: "absent", submitted: nil, correct: domain.NewOptionSet(2), want: false},
		{name: "empty list", submitted: multi(), correct: domain.NewOptionSet(2), want: false},
		{name: "empty correct set", submitted: multi(), correct: domain.OptionSet{}, want: false},
		{name: "absent with empty correct set", submitted: nil, correct: nil, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCorrect(tc.submitted, tc.correct); got != tc.want {
				t.Fatalf("IsCorrect = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDisplayIsOneIndexed(t *testing.T) {
	got := Display(domain.NewOptionSet(2, 0))
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("expected [1 3], got %v", got)
	}
}
