package main

import (
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"helpcenter/internal/infra/notifier"
	envconfig "helpcenter/pkg/config"
)

// validateSlackWebhook accepts only incoming-webhook URLs on hooks.slack.com.
func validateSlackWebhook(raw string) error {
	if raw == "" {
		return errors.New("webhook URL is empty")
	}
	u, err := url.Parse(raw)
	switch {
	case err != nil:
		return errors.New("webhook URL is malformed")
	case u.Scheme != "https":
		return errors.New("webhook URL must use https")
	case u.Host != "hooks.slack.com":
		return errors.New("webhook host must be hooks.slack.com")
	case !strings.HasPrefix(u.Path, "/services/"):
		return errors.New("webhook path must start with /services/")
	}
	return nil
}

// loadSlackConfig reads SLACK_ENABLED, SLACK_WEBHOOK_URL and SLACK_TIMEOUT.
// A bad webhook disables the channel with a warning; startup goes on.
func loadSlackConfig(logger *slog.Logger) notifier.SlackConfig {
	if !envconfig.GetEnvBool("SLACK_ENABLED", false) {
		return notifier.SlackConfig{}
	}
	webhook := envconfig.GetEnvString("SLACK_WEBHOOK_URL", "")
	if err := validateSlackWebhook(webhook); err != nil {
		// the URL embeds the secret token, so only the reason is logged
		logger.Warn("slack notifications disabled", slog.String("reason", err.Error()))
		return notifier.SlackConfig{}
	}
	return notifier.SlackConfig{
		Enabled:    true,
		WebhookURL: webhook,
		Timeout:    envconfig.GetEnvDurationWithin("SLACK_TIMEOUT", 30*time.Second, time.Second, 2*time.Minute),
	}
}
