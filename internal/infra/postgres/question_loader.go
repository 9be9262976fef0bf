package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"quiz-submission-service/internal/domain"
)

// QuestionLoader reads authored questions from Postgres.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadQuestions(ctx context.Context, quizID string) ([]domain.Question, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT "order", question, options, correct_options, marks, multiple_choice
		FROM questions
		WHERE quiz_id = $1
		ORDER BY "order"`, quizID)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var (
			q       = domain.Question{QuizID: quizID}
			options []byte
			correct string
		)
		if err := rows.Scan(&q.Order, &q.Text, &options, &correct, &q.Marks, &q.MultipleChoice); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, fmt.Errorf("decode options of q%d: %w", q.Order, err)
		}
		if q.CorrectOptions, err = domain.ParseOptionSet(correct); err != nil {
			return nil, fmt.Errorf("decode correct_options of q%d: %w", q.Order, err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}

// SaveQuestion upserts an authored question.
func (l *QuestionLoader) SaveQuestion(ctx context.Context, q domain.Question) error {
	options, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	_, err = l.pool.Exec(ctx, `
		INSERT INTO questions (quiz_id, "order", question, options, correct_options, marks, multiple_choice)
		VALUES ($1, $2, $3, $4::jsonb, $5, $6, $7)
		ON CONFLICT (quiz_id, "order") DO UPDATE SET
			question = EXCLUDED.question,
			options = EXCLUDED.options,
			correct_options = EXCLUDED.correct_options,
			marks = EXCLUDED.marks,
			multiple_choice = EXCLUDED.multiple_choice`,
		q.QuizID, q.Order, q.Text, string(options), q.CorrectOptions.String(), q.Marks, q.MultipleChoice)
	if err != nil {
		return fmt.Errorf("save question: %w", err)
	}
	return nil
}
