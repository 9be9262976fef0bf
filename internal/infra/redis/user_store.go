package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"quiz-submission-service/internal/domain"
)

// UserStore keeps each user as a hash keyed by token:
//
//	HSET users:{token} password username email quiz_id answers is_submitted marks
//	RPUSH users:{token}:resubmission_attempts {answers json}
//
// Conditional writes run as Lua scripts so the is_submitted check and the
// write are one atomic step.
type UserStore struct {
	client         *redis.Client
	maxResubmitted int
}

// NewUserStore keeps at most maxResubmitted audit entries per user; zero
// means unbounded.
func NewUserStore(client *redis.Client, maxResubmitted int) *UserStore {
	return &UserStore{client: client, maxResubmitted: maxResubmitted}
}

// Returns -1 when the user is missing, 0 when already submitted, 1 on write.
var updateUnsubmittedScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return -1
end
if redis.call('HGET', KEYS[1], 'is_submitted') == 'true' then
  return 0
end
for i = 1, #ARGV, 2 do
  redis.call('HSET', KEYS[1], ARGV[i], ARGV[i + 1])
end
return 1
`)

// Returns -1 when the user is missing, 1 otherwise.
var appendResubmissionScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return -1
end
redis.call('RPUSH', KEYS[2], ARGV[1])
local keep = tonumber(ARGV[2])
if keep > 0 then
  redis.call('LTRIM', KEYS[2], -keep, -1)
end
return 1
`)

func (s *UserStore) GetUser(ctx context.Context, token string) (domain.User, error) {
	pipe := s.client.Pipeline()
	fieldsCmd := pipe.HGetAll(ctx, s.userKey(token))
	attemptsCmd := pipe.LRange(ctx, s.attemptsKey(token), 0, -1)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}

	fields := fieldsCmd.Val()
	if len(fields) == 0 {
		return domain.User{}, domain.ErrUserNotFound
	}
	user, err := decodeUser(token, fields)
	if err != nil {
		return domain.User{}, err
	}
	for _, raw := range attemptsCmd.Val() {
		var attempt map[string]domain.AnswerValue
		if err := json.Unmarshal([]byte(raw), &attempt); err != nil {
			// keep the audit trail readable even if one entry is malformed
			continue
		}
		user.ResubmissionAttempts = append(user.ResubmissionAttempts, attempt)
	}
	return user, nil
}

func (s *UserStore) UpdateUnsubmitted(ctx context.Context, token string, update domain.UserUpdate) error {
	args := make([]interface{}, 0, 6)
	if update.Answers != nil {
		data, err := json.Marshal(update.Answers)
		if err != nil {
			return fmt.Errorf("encode answers: %w", err)
		}
		args = append(args, "answers", string(data))
	}
	if update.Score != nil {
		args = append(args, "marks", strconv.Itoa(*update.Score))
	}
	if update.Submit {
		args = append(args, "is_submitted", "true")
	}

	res, err := updateUnsubmittedScript.Run(ctx, s.client, []string{s.userKey(token)}, args...).Int()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	switch res {
	case -1:
		return domain.ErrUserNotFound
	case 0:
		return domain.ErrPreconditionFailed
	}
	return nil
}

func (s *UserStore) AppendResubmission(ctx context.Context, token string, answers map[string]domain.AnswerValue) error {
	data, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("encode attempt: %w", err)
	}
	res, err := appendResubmissionScript.Run(ctx, s.client,
		[]string{s.userKey(token), s.attemptsKey(token)},
		string(data), s.maxResubmitted).Int()
	if err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}
	if res == -1 {
		return domain.ErrUserNotFound
	}
	return nil
}

// PutUser creates or replaces a user record. Used when assigning quizzes.
func (s *UserStore) PutUser(ctx context.Context, user domain.User) error {
	answers := "{}"
	if user.Answers != nil {
		data, err := json.Marshal(user.Answers)
		if err != nil {
			return fmt.Errorf("encode answers: %w", err)
		}
		answers = string(data)
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.userKey(user.Token))
	pipe.HSet(ctx, s.userKey(user.Token),
		"password", user.Token,
		"username", user.Username,
		"email", user.Email,
		"quiz_id", user.QuizID,
		"answers", answers,
		"is_submitted", strconv.FormatBool(user.IsSubmitted),
		"marks", strconv.Itoa(user.Score),
	)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *UserStore) userKey(token string) string {
	return "users:" + token
}

func (s *UserStore) attemptsKey(token string) string {
	return "users:" + token + ":resubmission_attempts"
}

func decodeUser(token string, fields map[string]string) (domain.User, error) {
	user := domain.User{
		Token:    token,
		Username: fields["username"],
		Email:    fields["email"],
		QuizID:   fields["quiz_id"],
	}
	if raw := fields["answers"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &user.Answers); err != nil {
			return domain.User{}, fmt.Errorf("decode answers: %w", err)
		}
	}
	if raw := fields["is_submitted"]; raw != "" {
		submitted, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.User{}, fmt.Errorf("decode is_submitted: %w", err)
		}
		user.IsSubmitted = submitted
	}
	if raw := fields["marks"]; raw != "" {
		marks, err := strconv.Atoi(raw)
		if err != nil {
			return domain.User{}, fmt.Errorf("decode marks: %w", err)
		}
		user.Score = marks
	}
	return user, nil
}
