package mail

import (
	"context"

	"go.uber.org/zap"
)

// LogDispatcher stands in for SMTP in development: it logs instead of sending.
type LogDispatcher struct {
	logger *zap.Logger
}

// NewLogDispatcher builds a LogDispatcher.
func NewLogDispatcher(logger *zap.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Send(_ context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	d.logger.Info("mail not sent, smtp disabled",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("body_bytes", len(msg.Body)))
	return nil
}
