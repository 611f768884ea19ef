package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoopSender is the development and test sender. It logs what would have
// been sent and delivers nothing.
type NoopSender struct{}

// NewNoopSender creates a new NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send logs the notice but does not deliver it.
// POST: returns a synthetic result without actual delivery
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	slog.Info("event", "action", "email_skipped", "to", req.To, "subject", req.Subject)
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}
