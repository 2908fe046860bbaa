package notify

import "context"

// Notifier defines the interface for publishing operational notices.
// This abstraction allows swapping the log implementation for a real
// channel (Slack, webhook) without refactoring.
type Notifier interface {
	Publish(ctx context.Context, message string) error
}
