package email

import (
	"context"
	"strings"
	"testing"

	"hrpay/internal/platform/config"
)

func TestNewReturnsNoopWhenDisabled(t *testing.T) {
	mailer := New(config.Config{EmailEnabled: false, SMTPHost: "smtp.example.com"})
	if _, ok := mailer.(noopMailer); !ok {
		t.Fatalf("expected noop mailer, got %T", mailer)
	}
	if err := mailer.Send(context.Background(), Message{To: "a@example.com"}); err != nil {
		t.Fatalf("noop send: %v", err)
	}
}

func TestBuildMessage(t *testing.T) {
	raw := string(buildMessage("hr@example.com", Message{To: "kim@example.com", Subject: "휴가 승인", Body: "승인되었습니다."}))
	for _, want := range []string{"From: hr@example.com\r\n", "To: kim@example.com\r\n", "Subject: 휴가 승인\r\n", "\r\n\r\n승인되었습니다."} {
		if !strings.Contains(raw, want) {
			t.Fatalf("message missing %q:\n%s", want, raw)
		}
	}
}
