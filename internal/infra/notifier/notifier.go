// Package notifier delivers editor alerts to chat webhooks.
// The only alert today is negative reader feedback with a comment.
package notifier

import (
	"context"

	"helpcenter/internal/domain/entity"
)

// Notifier sends one alert. Implementations handle pacing and retries internally
// and must be safe for concurrent use.
type Notifier interface {
	NotifyFeedback(ctx context.Context, alert *entity.FeedbackAlert) error
}
