package notify

import (
	"context"

	"velvet-backend/internal/logger"

	"go.uber.org/zap"
)

// LogNotifier implements the Notifier interface by writing notices to the
// application log. Replace with a real channel for production use.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Publish(ctx context.Context, message string) error {
	logger.Info("notification published", zap.String("message", message))
	return nil
}
