package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"quiz-submission-service/internal/config"
	"quiz-submission-service/internal/domain"
)

func TestBuildServicesInMemory(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := buildServices(ctx, config.Default(), logger)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer svc.close()

	score, err := svc.submissions.SubmitAnswers(ctx, "12345", map[string]domain.AnswerValue{"q2": domain.Multi(1, 2), "q5": domain.Single(2)})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if score != 3 {
		t.Fatalf("expected demo score 3, got %d", score)
	}

	// The log notifier accepts delivery without SMTP.
	report, err := svc.reports.GenerateReport(ctx, "12345", true)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Score != 3 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestReportCommandPrintsReport(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", "does-not-exist.yaml", "report", "12345"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Quiz Report for: Sameer\n") {
		t.Fatalf("unexpected output %q", out.String())
	}
}
