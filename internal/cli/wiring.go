package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"quiz-submission-service/internal/app"
	"quiz-submission-service/internal/config"
	"quiz-submission-service/internal/domain"
	"quiz-submission-service/internal/infra/memory"
	pgloader "quiz-submission-service/internal/infra/postgres"
	redisstore "quiz-submission-service/internal/infra/redis"
	"quiz-submission-service/internal/notify"
)

// services bundles the application layer built from config.
type services struct {
	access      *app.AccessService
	submissions *app.SubmissionService
	reports     *app.ReportService
	close       func()
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Log.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// buildServices picks redis-backed stores when redis is configured and
// falls back to in-memory stores seeded with a demo quiz otherwise.
// Postgres, when configured, is the question source behind the cache.
func buildServices(ctx context.Context, cfg config.Config, logger *slog.Logger) (*services, error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		var err error
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		closers = append(closers, pool.Close)
	}

	questionTTL := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)
	maxAttempts := cfg.Audit.MaxResubmissionAttempts

	var (
		users     app.UserStore
		questions app.QuestionRepository
		events    app.EventStore
	)
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, func() { _ = client.Close() })
		if err := client.Ping(ctx).Err(); err != nil {
			closeAll()
			return nil, err
		}

		var loader redisstore.QuestionLoader
		if pool != nil {
			loader = pgloader.NewQuestionLoader(pool)
		}
		users = redisstore.NewUserStore(client, maxAttempts)
		questions = redisstore.NewQuestionRepository(client, loader, questionTTL)
		events = redisstore.NewEventStore(client, cfg.Redis.EventsMaxLen)
		logger.Info("using redis stores", "addr", cfg.Redis.Addr, "postgres", pool != nil)
	} else {
		var loader memory.QuestionLoader = memory.NewStaticQuestionLoader(sampleQuestions())
		if pool != nil {
			loader = pgloader.NewQuestionLoader(pool)
		}
		users = memory.NewUserStore(maxAttempts, sampleUsers()...)
		questions = memory.NewQuestionRepository(loader, questionTTL)
		events = memory.NewEventStore()
		logger.Warn("redis not configured, using in-memory stores")
	}

	var notifier app.Notifier = notify.NewLogNotifier(logger)
	if cfg.SMTP.Host != "" {
		notifier = notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:       cfg.SMTP.Host,
			Port:       cfg.SMTP.Port,
			Username:   cfg.SMTP.Username,
			Password:   cfg.SMTP.Password,
			From:       cfg.SMTP.From,
			Recipients: cfg.SMTP.Recipients,
		})
	}

	return &services{
		access:      app.NewAccessService(users, questions, events, logger),
		submissions: app.NewSubmissionService(users, questions, logger),
		reports:     app.NewReportService(users, questions, notifier, logger),
		close:       closeAll,
	}, nil
}

// sampleQuestions is the demo quiz served by the in-memory setup.
func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			QuizID:         "final",
			Order:          2,
			Text:           "What is an Agent?",
			Options:        []string{"Fad", "LLM + Tools", "Fundamental aspect of Agentic AI", "FOMO"},
			CorrectOptions: domain.NewOptionSet(1, 2),
			Marks:          2,
			MultipleChoice: true,
		},
		{
			QuizID:         "final",
			Order:          5,
			Text:           "What is Agentic AI?",
			Options:        []string{"Fad", "A question", "Application of GenAI", "FOMO Course"},
			CorrectOptions: domain.NewOptionSet(2),
			Marks:          1,
		},
	}
}

func sampleUsers() []domain.User {
	return []domain.User{{Token: "12345", Username: "Sameer", QuizID: "final"}}
}
