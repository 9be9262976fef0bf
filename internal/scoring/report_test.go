package scoring

import (
	"strings"
	"testing"

	"quiz-submission-service/internal/domain"
)

func TestRenderTranscript(t *testing.T) {
	user := domain.User{
		Token:       "12345",
		Username:    "Sameer",
		QuizID:      "final",
		Answers:     map[string]domain.AnswerValue{"q2": domain.Multi(2, 1), "q5": domain.Single(2)},
		IsSubmitted: true,
		Score:       3,
	}

	report := Render(user, sampleQuestions())

	want := strings.Join([]string{
		"Quiz Report for: Sameer",
		"Quiz ID: final",
		"Total Marks: 3",
		"Submitted: Yes",
		strings.Repeat("=", 80),
		"",
		"Q1: What is an Agent?",
		"Options:",
		"  1. Fad",
		"  2. LLM + Tools",
		"  3. Fundamental aspect of Agentic AI",
		"  4. FOMO",
		"Your selection: 2, 3",
		"Actual correct answer(s): 2, 3",
		"Correct: Yes",
		"Marks: 2/2",
		"",
		"Q2: What is Agentic AI?",
		"Options:",
		"  1. Fad",
		"  2. A question",
		"  3. Application of GenAI",
		"  4. FOMO Course",
		"Your selection: 3",
		"Actual correct answer(s): 3",
		"Correct: Yes",
		"Marks: 1/1",
		"",
		strings.Repeat("=", 80),
		"Your Score: 3/3",
	}, "\n")

	if report.Text != want {
		t.Fatalf("unexpected report:\n%s\n--- want ---\n%s", report.Text, want)
	}
	if report.Result.Score != 3 || report.Result.TotalPossible != 3 {
		t.Fatalf("unexpected totals %+v", report.Result)
	}
}

func TestRenderOneIndexedSelection(t *testing.T) {
	user := domain.User{
		Username: "Ann",
		QuizID:   "basics",
		Answers:  map[string]domain.AnswerValue{"q1": domain.Multi(1, 0)},
	}
	questions := []domain.Question{{
		Order:          1,
		Text:           "Pick the first two",
		Options:        []string{"a", "b", "c"},
		CorrectOptions: domain.NewOptionSet(0, 1),
		Marks:          2,
		MultipleChoice: true,
	}}

	text := Render(user, questions).Text
	for _, expect := range []string{"Your selection: 1, 2", "Actual correct answer(s): 1, 2", "Correct: Yes", "Submitted: No"} {
		if !strings.Contains(text, expect) {
			t.Fatalf("expected %q in report:\n%s", expect, text)
		}
	}
}

func TestRenderMarkers(t *testing.T) {
	user := domain.User{Username: "Bo", QuizID: "final"}
	questions := []domain.Question{{Order: 1, Text: "Unkeyed", Options: []string{"x"}, Marks: 1}}

	text := Render(user, questions).Text
	if !strings.Contains(text, "Your selection: Not answered") {
		t.Fatalf("expected not answered marker:\n%s", text)
	}
	if !strings.Contains(text, "Actual correct answer(s): none") {
		t.Fatalf("expected none placeholder:\n%s", text)
	}
	if !strings.HasSuffix(text, "Your Score: 0/1") {
		t.Fatalf("unexpected footer:\n%s", text)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	user := domain.User{
		Username: "Sameer",
		QuizID:   "final",
		Answers:  map[string]domain.AnswerValue{"q2": domain.Multi(1), "q5": domain.Single(0)},
	}
	first := Render(user, sampleQuestions()).Text
	for i := 0; i < 20; i++ {
		if got := Render(user, sampleQuestions()).Text; got != first {
			t.Fatalf("render %d differs", i)
		}
	}
}
