// Package related ranks "related articles" for an article page.
//
// Every published article other than the one being read is scored with a fixed set of
// additive heuristics (category, keywords, popularity, recency, reading time, content
// type) and the ranking is then thinned so no single category dominates the list.
// The computation is read-only; any failure yields an empty list, never an error.
package related

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/observability/metrics"
	"helpcenter/internal/observability/tracing"
	"helpcenter/internal/repository"
)

const (
	DefaultMaxResults = 6
	MaxResultsLimit   = 20
	sidebarItems      = 3
)

// Mode is the display density of the widget.
type Mode string

const (
	ModeSidebar Mode = "sidebar"
	ModeSection Mode = "section"
)

// ErrInvalidMode is returned by ParseMode for unknown values.
var ErrInvalidMode = errors.New("invalid mode: must be sidebar or section")

// ParseMode defaults to section when s is empty.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeSection:
		return ModeSection, nil
	case ModeSidebar:
		return ModeSidebar, nil
	}
	return "", ErrInvalidMode
}

// Request describes the article being read.
// CategoryID 0 means "use the category of the target article".
type Request struct {
	ArticleID  int64
	CategoryID int64
	Tags       []string
	MaxResults int
	Mode       Mode
}

// ScoredCandidate is one ranked article. Category is nil when the article
// points at a category missing from the category list.
type ScoredCandidate struct {
	Article  *entity.Article
	Category *entity.Category
	Score    float64
	Reasons  []string
}

// Result is the over-fetched ranking (up to 2N items) plus how many of them
// the widget shows before the reader expands it.
type Result struct {
	Items   []ScoredCandidate
	Display int
}

// Visible returns the items to render: all of them when expanded, else the first Display.
func (r Result) Visible(expand bool) []ScoredCandidate {
	if expand || len(r.Items) <= r.Display {
		return r.Items
	}
	return r.Items[:r.Display]
}

type Service struct {
	Store  Store
	Clock  Clock
	Logger *slog.Logger
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now()
	}
	return time.Now()
}

// Find computes the related articles for req. It never fails: fetch errors and
// panics are logged and reported as an empty Result.
func (s *Service) Find(ctx context.Context, req Request) (res Result) {
	start := time.Now()
	n := clampMaxResults(req.MaxResults)
	res.Display = displayCount(req.Mode, n)

	ctx, span := tracing.GetTracer().Start(ctx, "related.Find")
	span.SetAttributes(
		attribute.Int64("article.id", req.ArticleID),
		attribute.Int("related.max_results", n),
	)

	outcome := "ok"
	defer func() {
		if rec := recover(); rec != nil {
			s.logger().ErrorContext(ctx, "related articles panicked",
				slog.Int64("article_id", req.ArticleID),
				slog.Any("panic", rec))
			res.Items = nil
			outcome = "failed"
		}
		if outcome == "ok" && len(res.Items) == 0 {
			outcome = "empty"
		}
		span.SetAttributes(
			attribute.String("related.outcome", outcome),
			attribute.Int("related.result_size", len(res.Items)),
		)
		span.End()
		metrics.RecordRelated(outcome, len(res.Items), time.Since(start))
	}()

	items, err := s.rank(ctx, req, n)
	if err != nil {
		s.logger().ErrorContext(ctx, "related articles unavailable",
			slog.Int64("article_id", req.ArticleID),
			slog.Any("error", err))
		span.RecordError(err)
		outcome = "failed"
		return res
	}
	res.Items = items
	return res
}

func (s *Service) rank(ctx context.Context, req Request, n int) ([]ScoredCandidate, error) {
	categories, articles, tgt, err := s.fetch(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}

	pool := make([]*entity.Article, 0, len(articles))
	for _, a := range articles {
		if a.ID != req.ArticleID {
			pool = append(pool, a)
		}
	}
	if len(pool) == 0 {
		return nil, nil
	}

	categoryID := req.CategoryID
	if categoryID == 0 && tgt.found {
		categoryID = tgt.article.CategoryID
	}

	byID := make(map[int64]*entity.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	sc := newScorer(categoryID, req.Tags, tgt, pool, s.now())
	scored := make([]ScoredCandidate, 0, len(pool))
	for _, a := range pool {
		points, reasons := sc.score(a)
		scored = append(scored, ScoredCandidate{
			Article:  a,
			Category: byID[a.CategoryID],
			Score:    points,
			Reasons:  reasons,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	return selectDiverse(scored, n), nil
}

// fetch loads the categories, the published pool and the target concurrently.
// Only the two list calls can fail the join; the target lookup degrades to "not found".
func (s *Service) fetch(ctx context.Context, articleID int64) (categories []*entity.Category, articles []*entity.Article, tgt target, err error) {
	ctx, span := tracing.GetTracer().Start(ctx, "related.fetch")
	defer span.End()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(guard(func() error {
		var err error
		categories, err = s.Store.ListCategories(gctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		return nil
	}))
	g.Go(guard(func() error {
		var err error
		articles, err = s.Store.ListArticles(gctx, repository.PublishedFilter())
		if err != nil {
			return fmt.Errorf("list published articles: %w", err)
		}
		return nil
	}))
	g.Go(guard(func() error {
		tgt = s.lookupTarget(gctx, articleID)
		return nil
	}))

	if err := g.Wait(); err != nil {
		return nil, nil, target{}, err
	}
	return categories, articles, tgt, nil
}

func (s *Service) lookupTarget(ctx context.Context, articleID int64) (t target) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger().WarnContext(ctx, "target article lookup panicked", slog.Any("panic", rec))
			t = target{}
		}
	}()

	a, err := s.Store.GetArticle(ctx, articleID)
	if err != nil {
		s.logger().WarnContext(ctx, "target article lookup failed, scoring without it",
			slog.Int64("article_id", articleID),
			slog.Any("error", err))
		return target{}
	}
	if a == nil {
		return target{}
	}
	return target{article: a, found: true}
}

// guard turns a panic inside an errgroup goroutine into an error for Wait.
func guard(fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("panic: %v", rec)
			}
		}()
		return fn()
	}
}

// selectDiverse walks the ranking, admitting a candidate while fewer than two
// admitted items share its category or while fewer than n items are admitted.
// It stops at 2n. The second condition lets one category take more than two of
// the first n slots; the widget has always behaved this way.
func selectDiverse(ranked []ScoredCandidate, n int) []ScoredCandidate {
	limit := 2 * n
	out := make([]ScoredCandidate, 0, min(limit, len(ranked)))
	perCategory := make(map[int64]int)
	for _, c := range ranked {
		if len(out) >= limit {
			break
		}
		cat := c.Article.CategoryID
		if perCategory[cat] < 2 || len(out) < n {
			out = append(out, c)
			perCategory[cat]++
		}
	}
	return out
}

func clampMaxResults(n int) int {
	switch {
	case n <= 0:
		return DefaultMaxResults
	case n > MaxResultsLimit:
		return MaxResultsLimit
	}
	return n
}

func displayCount(mode Mode, n int) int {
	if mode == ModeSidebar {
		return min(sidebarItems, n)
	}
	return n
}
