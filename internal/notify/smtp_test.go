package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"quiz-submission-service/internal/domain"
)

func TestSMTPNotifierSendsToRecipientsAndUser(t *testing.T) {
	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)
	n := NewSMTPNotifier(SMTPConfig{Host: "mail.local", Port: "2525", From: "quiz@local", Recipients: []string{"instructor@local", " "}})
	n.send = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	user := domain.User{Username: "Sameer", QuizID: "final", Email: "sameer@local"}
	if err := n.SendReport(context.Background(), user, "line one\nline two"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotAddr != "mail.local:2525" {
		t.Fatalf("unexpected addr %s", gotAddr)
	}
	if len(gotTo) != 2 || gotTo[0] != "instructor@local" || gotTo[1] != "sameer@local" {
		t.Fatalf("unexpected recipients %v", gotTo)
	}
	if !strings.Contains(gotMsg, "Subject: Quiz report: Sameer (final)\r\n") || !strings.Contains(gotMsg, "line one\r\nline two") {
		t.Fatalf("unexpected message:\n%s", gotMsg)
	}
}

func TestSMTPNotifierErrors(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{Host: "mail.local", Port: "25"})
	if err := n.SendReport(context.Background(), domain.User{}, "r"); err == nil {
		t.Fatalf("expected error without recipients")
	}

	n = NewSMTPNotifier(SMTPConfig{Host: "mail.local", Port: "25", Recipients: []string{"a@local"}})
	n.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("connection refused") }
	if err := n.SendReport(context.Background(), domain.User{}, "r"); err == nil {
		t.Fatalf("expected send failure to surface")
	}
}
