package scoring

import (
	"strconv"
	"strings"

	"quiz-submission-service/internal/domain"
)

const ruleWidth = 80

// Report is a rendered transcript plus the totals it was built from.
type Report struct {
	Text   string
	Result Result
}

// Render builds the deterministic text transcript of a user's attempt.
// Correctness comes from Score, never from stored flags.
func Render(user domain.User, questions []domain.Question) Report {
	res := Score(questions, user.Answers)

	var b strings.Builder
	line := func(parts ...string) {
		for _, p := range parts {
			b.WriteString(p)
		}
		b.WriteByte('\n')
	}

	line("Quiz Report for: ", user.Username)
	line("Quiz ID: ", user.QuizID)
	line("Total Marks: ", strconv.Itoa(user.Score))
	line("Submitted: ", yesNo(user.IsSubmitted))
	line(strings.Repeat("=", ruleWidth))
	line()

	for i, qr := range res.Questions {
		line("Q", strconv.Itoa(i+1), ": ", qr.Text)
		line("Options:")
		for j, opt := range qr.Options {
			line("  ", strconv.Itoa(j+1), ". ", opt)
		}
		if qr.Answered {
			line("Your selection: ", joinOrNone(qr.Selected))
		} else {
			line("Your selection: Not answered")
		}
		line("Actual correct answer(s): ", joinOrNone(qr.Correct))
		line("Correct: ", yesNo(qr.IsRight))
		line("Marks: ", strconv.Itoa(qr.Awarded), "/", strconv.Itoa(qr.Marks))
		line()
	}

	line(strings.Repeat("=", ruleWidth))
	b.WriteString("Your Score: " + strconv.Itoa(res.Score) + "/" + strconv.Itoa(res.TotalPossible))

	return Report{Text: b.String(), Result: res}
}

func joinOrNone(nums []int) string {
	if len(nums) == 0 {
		return "none"
	}
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
