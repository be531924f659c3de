// Package feedback serves the "was this article helpful?" vote endpoint and the
// admin feedback report.
package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/handler/http/auth"
	"helpcenter/internal/handler/http/middleware"
	"helpcenter/internal/handler/http/respond"
	feedbackUC "helpcenter/internal/usecase/feedback"
)

// Service is implemented by *feedbackUC.Service.
type Service interface {
	Submit(ctx context.Context, in feedbackUC.SubmitInput) (*entity.Feedback, error)
	ListByArticle(ctx context.Context, articleID int64) ([]*entity.Feedback, error)
	Summary(ctx context.Context, articleID int64) (*entity.FeedbackSummary, error)
}

type DTO struct {
	ID        int64     `json:"id"`
	ArticleID int64     `json:"article_id"`
	Helpful   bool      `json:"helpful"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SummaryDTO struct {
	Helpful   int64 `json:"helpful"`
	Unhelpful int64 `json:"unhelpful"`
}

// ReportDTO is the admin view of one article's feedback.
type ReportDTO struct {
	ArticleID int64      `json:"article_id"`
	Summary   SummaryDTO `json:"summary"`
	Items     []DTO      `json:"items"`
}

type submitRequest struct {
	ArticleID int64  `json:"article_id"`
	Helpful   *bool  `json:"helpful"`
	Comment   string `json:"comment"`
}

var (
	errInvalidBody      = errors.New("invalid request body")
	errHelpfulRequired  = errors.New("helpful is required")
	errArticleIDMissing = errors.New("article_id query parameter is required")
)

// Register mounts POST /feedback behind limiter and the admin report.
// A nil limiter leaves submissions unthrottled.
func Register(mux *http.ServeMux, svc Service, limiter *middleware.RateLimiter) {
	var submit http.Handler = SubmitHandler{Svc: svc}
	if limiter != nil {
		submit = limiter.Middleware(submit)
	}
	mux.Handle("POST /feedback", submit)
	mux.Handle("GET /admin/feedback", auth.Authz(ReportHandler{Svc: svc}))
}

func toDTO(f *entity.Feedback) DTO {
	return DTO{
		ID:        f.ID,
		ArticleID: f.ArticleID,
		Helpful:   f.Helpful,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, feedbackUC.ErrInvalidArticleID), errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, feedbackUC.ErrArticleNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

type SubmitHandler struct{ Svc Service }

func (h SubmitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}
	if req.Helpful == nil {
		respond.SafeError(w, http.StatusBadRequest, errHelpfulRequired)
		return
	}
	f, err := h.Svc.Submit(r.Context(), feedbackUC.SubmitInput{
		ArticleID: req.ArticleID,
		Helpful:   *req.Helpful,
		Comment:   req.Comment,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(f))
}

// ReportHandler returns the totals and the votes of ?article_id=, newest first.
type ReportHandler struct{ Svc Service }

func (h ReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("article_id")
	if raw == "" {
		respond.SafeError(w, http.StatusBadRequest, errArticleIDMissing)
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, feedbackUC.ErrInvalidArticleID)
		return
	}

	sum, err := h.Svc.Summary(r.Context(), id)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	list, err := h.Svc.ListByArticle(r.Context(), id)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	items := make([]DTO, 0, len(list))
	for _, f := range list {
		items = append(items, toDTO(f))
	}
	respond.JSON(w, http.StatusOK, ReportDTO{
		ArticleID: id,
		Summary:   SummaryDTO{Helpful: sum.Helpful, Unhelpful: sum.Unhelpful},
		Items:     items,
	})
}
