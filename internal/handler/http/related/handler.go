// Package related serves the "related articles" widget of the article page.
package related

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/handler/http/pathutil"
	"helpcenter/internal/handler/http/respond"
	"helpcenter/internal/observability/logging"
	relatedUC "helpcenter/internal/usecase/related"
)

// Finder computes the ranking. *relatedUC.Service implements it.
type Finder interface {
	Find(ctx context.Context, req relatedUC.Request) relatedUC.Result
}

// TagSource returns the tag names of an article. *tagUC.Service implements it.
type TagSource interface {
	Names(ctx context.Context, articleID int64) ([]string, error)
}

type CategoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ItemDTO struct {
	ID          int64        `json:"id"`
	Slug        string       `json:"slug"`
	Title       string       `json:"title"`
	ReadingTime int          `json:"reading_time"`
	Type        string       `json:"type"`
	Category    *CategoryDTO `json:"category"`
	Score       float64      `json:"score"`
	Reasons     []string     `json:"reasons"`
}

// Response carries the visible items plus the size of the full pool, so the
// client knows whether to offer "show more" (expand=true).
type Response struct {
	Items     []ItemDTO `json:"items"`
	Total     int       `json:"total"`
	Expanded  bool      `json:"expanded"`
	Truncated bool      `json:"truncated"`
}

// Handler serves
//
//	GET /articles/{id}/related?limit=6&mode=sidebar&expand=false&category_id=&tags=a,b
//
// Tags default to the article's own tags. A failed computation answers 200 with no items.
type Handler struct {
	Svc  Finder
	Tags TagSource
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	limit, err := pathutil.QueryInt(r, "limit", relatedUC.DefaultMaxResults)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	categoryID, err := pathutil.QueryInt(r, "category_id", 0)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	expand, err := pathutil.QueryBool(r, "expand")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	mode, err := relatedUC.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	res := h.Svc.Find(r.Context(), relatedUC.Request{
		ArticleID:  id,
		CategoryID: int64(categoryID),
		Tags:       h.tags(r, id),
		MaxResults: limit,
		Mode:       mode,
	})

	visible := res.Visible(expand)
	out := Response{
		Items:     make([]ItemDTO, 0, len(visible)),
		Total:     len(res.Items),
		Expanded:  expand,
		Truncated: len(visible) < len(res.Items),
	}
	for _, c := range visible {
		out.Items = append(out.Items, toItem(c))
	}
	respond.JSON(w, http.StatusOK, out)
}

func (h Handler) tags(r *http.Request, articleID int64) []string {
	if raw, ok := r.URL.Query()["tags"]; ok {
		var tags []string
		for _, part := range strings.Split(strings.Join(raw, ","), ",") {
			if t := strings.TrimSpace(part); t != "" {
				tags = append(tags, t)
			}
		}
		return tags
	}
	if h.Tags == nil {
		return nil
	}
	names, err := h.Tags.Names(r.Context(), articleID)
	if err != nil {
		// scoring still works on category, popularity and recency
		logging.FromContext(r.Context()).WarnContext(r.Context(), "related: tag lookup failed",
			slog.Int64("article_id", articleID),
			slog.Any("error", err))
		return nil
	}
	return names
}

func toItem(c relatedUC.ScoredCandidate) ItemDTO {
	a := c.Article
	item := ItemDTO{
		ID:          a.ID,
		Slug:        a.Slug,
		Title:       a.Title,
		ReadingTime: a.ReadingTime,
		Type:        string(a.Type),
		Category:    toCategory(c.Category),
		Score:       c.Score,
		Reasons:     c.Reasons,
	}
	if item.Reasons == nil {
		item.Reasons = []string{}
	}
	return item
}

func toCategory(cat *entity.Category) *CategoryDTO {
	if cat == nil {
		return nil
	}
	return &CategoryDTO{ID: cat.ID, Name: cat.Name, Slug: cat.Slug}
}
