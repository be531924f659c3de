package notify

import (
	"context"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/infra/notifier"
)

// SlackChannel posts alerts to the editors' Slack webhook.
type SlackChannel struct {
	// nil when no webhook is configured
	webhook notifier.Notifier
}

func NewSlackChannel(cfg notifier.SlackConfig) *SlackChannel {
	ch := &SlackChannel{}
	if cfg.Enabled && cfg.WebhookURL != "" {
		ch.webhook = notifier.NewSlackNotifier(cfg)
	}
	return ch
}

func (c *SlackChannel) Name() string    { return "slack" }
func (c *SlackChannel) IsEnabled() bool { return c.webhook != nil }

func (c *SlackChannel) Send(ctx context.Context, alert *entity.FeedbackAlert) error {
	if c.webhook == nil {
		return ErrChannelDisabled
	}
	if alert == nil || alert.Feedback == nil || alert.Feedback.Helpful {
		return ErrInvalidAlert
	}
	return c.webhook.NotifyFeedback(ctx, alert)
}
