package domain

import "strconv"

// User is a quiz taker keyed by an opaque token (stored as "password").
type User struct {
	Token                string                   `json:"password"`
	Username             string                   `json:"username"`
	Email                string                   `json:"email,omitempty"`
	QuizID               string                   `json:"quiz_id"`
	Answers              map[string]AnswerValue   `json:"answers,omitempty"`
	IsSubmitted          bool                     `json:"is_submitted"`
	Score                int                      `json:"marks"`
	ResubmissionAttempts []map[string]AnswerValue `json:"resubmission_attempts,omitempty"`
}

// Question is an immutable quiz item; Order is unique within a quiz.
type Question struct {
	QuizID         string    `json:"quiz_id"`
	Order          int       `json:"order"`
	Text           string    `json:"question"`
	Options        []string  `json:"options"`
	CorrectOptions OptionSet `json:"correct_options"`
	Marks          int       `json:"marks"`
	MultipleChoice bool      `json:"multiple_choice"`
}

// Ref is the key used for this question inside an answers mapping.
func (q Question) Ref() string {
	return QuestionRef(q.Order)
}

// QuestionRef returns "q" + order.
func QuestionRef(order int) string {
	return "q" + strconv.Itoa(order)
}

// PublicQuestion is the view of a question handed to quiz takers.
type PublicQuestion struct {
	ID             string   `json:"id"`
	Order          int      `json:"order"`
	Text           string   `json:"question"`
	Options        []string `json:"options"`
	Marks          int      `json:"marks"`
	MultipleChoice bool     `json:"multiple_choice"`
}

// QuestionResult is the scoring trace for one question. Selected and
// Correct hold 1-indexed, sorted option numbers.
type QuestionResult struct {
	Order    int      `json:"order"`
	Text     string   `json:"question"`
	Options  []string `json:"options"`
	Answered bool     `json:"answered"`
	Selected []int    `json:"selected"`
	Correct  []int    `json:"correct"`
	Marks    int      `json:"marks"`
	Awarded  int      `json:"awarded"`
	IsRight  bool     `json:"is_correct"`
}

// Event is a proctoring signal reported by the quiz client.
type Event struct {
	Token     string `json:"password"`
	Username  string `json:"username"`
	Reason    string `json:"reason"`
	Timestamp string `json:"timestamp"`
}

// UserUpdate is the mutation applied by a conditional user update. Nil
// fields are left untouched.
type UserUpdate struct {
	Answers map[string]AnswerValue
	Score   *int
	Submit  bool
}
