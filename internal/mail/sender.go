package mail

import (
	"context"

	"go.uber.org/zap"
)

// Sender delivers one HTML email. Implementations are fire-and-forget
// from the caller's perspective: a returned error is logged by the caller
// and never fails the surrounding operation.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// LogSender is used when no mail credentials are configured: it records
// what would have been sent and succeeds.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender builds the fallback sender.
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message instead of delivering it.
func (s *LogSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	s.logger.Info("mail not configured; dropping message",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}
