package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/infra/content"
	"helpcenter/internal/observability/metrics"
	"helpcenter/internal/repository"
)

// Alerter is the part of notify.Service used here.
type Alerter interface {
	NotifyNegativeFeedback(ctx context.Context, alert *entity.FeedbackAlert) error
}

type SubmitInput struct {
	ArticleID int64
	Helpful   bool
	Comment   string
}

type Service struct {
	Repo     repository.FeedbackRepository
	Articles repository.ArticleRepository
	Alerts   Alerter // nil disables alerts
	Content  *content.Processor
	// BaseURL prefixes article links in alerts, e.g. "https://ajuda.example.com".
	BaseURL string
	Now     func() time.Time
	Logger  *slog.Logger
}

var defaultProcessor = content.NewProcessor()

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Submit stores a vote on a published article. An unhelpful vote that carries
// a comment is forwarded to the alert channels without waiting for delivery.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*entity.Feedback, error) {
	if in.ArticleID <= 0 {
		return nil, ErrInvalidArticleID
	}

	proc := s.Content
	if proc == nil {
		proc = defaultProcessor
	}
	comment := strings.TrimSpace(proc.StripTags(in.Comment))
	if utf8.RuneCountInString(comment) > entity.MaxFeedbackCommentLength {
		return nil, &entity.ValidationError{
			Field:   "comment",
			Message: fmt.Sprintf("comment is too long (max %d characters)", entity.MaxFeedbackCommentLength),
		}
	}

	art, err := s.Articles.Get(ctx, in.ArticleID)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil || !art.IsPublished() {
		return nil, ErrArticleNotFound
	}

	f := &entity.Feedback{
		ArticleID: in.ArticleID,
		Helpful:   in.Helpful,
		Comment:   comment,
		CreatedAt: s.now(),
	}
	if err := s.Repo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	metrics.RecordFeedback(f.Helpful)

	if !f.Helpful && f.Comment != "" && s.Alerts != nil {
		alert := &entity.FeedbackAlert{
			Feedback:     f,
			ArticleTitle: art.Title,
			ArticleURL:   s.articleURL(art.Slug),
		}
		if err := s.Alerts.NotifyNegativeFeedback(ctx, alert); err != nil {
			s.logger().Warn("feedback alert not dispatched",
				slog.Int64("feedback_id", f.ID),
				slog.Any("error", err))
		}
	}
	return f, nil
}

func (s *Service) articleURL(slug string) string {
	if s.BaseURL == "" {
		return ""
	}
	return strings.TrimRight(s.BaseURL, "/") + "/articles/" + slug
}

// ListByArticle returns the votes of one article, newest first.
func (s *Service) ListByArticle(ctx context.Context, articleID int64) ([]*entity.Feedback, error) {
	if articleID <= 0 {
		return nil, ErrInvalidArticleID
	}
	list, err := s.Repo.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return list, nil
}

// Summary returns the helpful and unhelpful totals of one article.
func (s *Service) Summary(ctx context.Context, articleID int64) (*entity.FeedbackSummary, error) {
	if articleID <= 0 {
		return nil, ErrInvalidArticleID
	}
	sum, err := s.Repo.Summary(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("feedback summary: %w", err)
	}
	return sum, nil
}
