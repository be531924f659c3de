package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/handler/http/requestid"
	"helpcenter/internal/resilience/retry"
	"helpcenter/internal/utils/text"
)

// SlackConfig contains configuration for Slack webhook notifications.
type SlackConfig struct {
	// Enabled indicates whether Slack notifications are enabled
	Enabled bool

	// WebhookURL is the Slack Incoming Webhook URL (includes authentication token)
	WebhookURL string

	// Timeout is the HTTP request timeout for Slack API calls
	Timeout time.Duration
}

// SlackNotifier sends feedback alerts to Slack via Incoming Webhook.
type SlackNotifier struct {
	config     SlackConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	retry      retry.Policy
}

// NewSlackNotifier creates a SlackNotifier paced at one message per second,
// the Incoming Webhook limit.
func NewSlackNotifier(config SlackConfig) *SlackNotifier {
	return &SlackNotifier{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(1), 1),
		retry:   retry.WebhookPolicy(),
	}
}

// SlackWebhookPayload represents the JSON payload sent to Slack webhook using Block Kit.
type SlackWebhookPayload struct {
	Text   string       `json:"text"`   // Fallback text (required)
	Blocks []SlackBlock `json:"blocks"` // Rich formatting blocks
}

// SlackBlock represents a Slack Block Kit block.
type SlackBlock struct {
	Type     string            `json:"type"`               // "section", "context"
	Text     *SlackTextObject  `json:"text,omitempty"`     // Text content (for section)
	Elements []SlackTextObject `json:"elements,omitempty"` // Elements (for context)
}

// SlackTextObject represents a text object in Slack Block Kit.
type SlackTextObject struct {
	Type string `json:"type"` // "mrkdwn" or "plain_text"
	Text string `json:"text"`
}

const (
	// Slack Block Kit limits
	maxSectionTextLength = 3000
	maxFallbackLength    = 150
)

// buildPayload renders the alert: a fallback line, a section with the linked
// article title and the quoted comment, and a context line with ids and time.
func (s *SlackNotifier) buildPayload(alert *entity.FeedbackAlert) SlackWebhookPayload {
	fallback := text.Truncate(fmt.Sprintf("Unhelpful feedback: %s", alert.ArticleTitle), maxFallbackLength)

	title := alert.ArticleTitle
	if alert.ArticleURL != "" {
		title = fmt.Sprintf("<%s|%s>", alert.ArticleURL, alert.ArticleTitle)
	}
	section := text.Truncate(
		fmt.Sprintf(":thumbsdown: *%s*\n\n>%s", title, alert.Feedback.Comment),
		maxSectionTextLength)

	context := fmt.Sprintf("article #%d • feedback #%d • %s",
		alert.Feedback.ArticleID, alert.Feedback.ID, alert.Feedback.CreatedAt.UTC().Format(time.RFC3339))

	return SlackWebhookPayload{
		Text: fallback,
		Blocks: []SlackBlock{
			{Type: "section", Text: &SlackTextObject{Type: "mrkdwn", Text: section}},
			{Type: "context", Elements: []SlackTextObject{{Type: "mrkdwn", Text: context}}},
		},
	}
}

// send performs one webhook request.
func (s *SlackNotifier) send(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// the URL embeds the webhook token
		return fmt.Errorf("execute http request: %w", unwrapURLError(err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return webhookError("slack", resp, respBody)
}

// NotifyFeedback implements Notifier. It waits for the pacing limiter and then
// delivers the alert with retry.WebhookPolicy backoff.
func (s *SlackNotifier) NotifyFeedback(ctx context.Context, alert *entity.FeedbackAlert) error {
	if alert == nil || alert.Feedback == nil {
		return fmt.Errorf("slack notify: empty alert")
	}

	requestID := requestid.FromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	log := slog.With(
		slog.String("request_id", requestID),
		slog.Int64("article_id", alert.Feedback.ArticleID),
		slog.Int64("feedback_id", alert.Feedback.ID))

	body, err := json.Marshal(s.buildPayload(alert))
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	attempts := 0
	err = retry.Do(ctx, s.retry, func() error {
		attempts++
		return s.send(ctx, body)
	})
	if err != nil {
		log.Error("slack notification failed", slog.Int("attempts", attempts), slog.Any("error", err))
		return fmt.Errorf("slack notification: %w", err)
	}
	log.Info("slack notification sent", slog.Int("attempts", attempts))
	return nil
}
