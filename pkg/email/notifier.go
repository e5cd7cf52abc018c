// Package email sends transactional mail to customers.
package email

import (
	"context"
	"log/slog"
)

// Notifier delivers one message with a plain-text and an HTML body.
type Notifier interface {
	SendEmail(ctx context.Context, to, subject, plainTextContent, htmlContent string) error
}

// LogSender is a Notifier that only logs. It is used when SES is not
// configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendEmail(ctx context.Context, to, subject, plainTextContent, _ string) error {
	s.logger.InfoContext(ctx, "email not sent, no provider configured",
		"to", to,
		"subject", subject,
		"body_bytes", len(plainTextContent),
	)
	return nil
}
