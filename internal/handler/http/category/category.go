// Package category provides the HTTP handlers for the help-center home grid,
// the category pages and the admin category endpoints.
package category

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/handler/http/article"
	"helpcenter/internal/handler/http/auth"
	"helpcenter/internal/handler/http/pathutil"
	"helpcenter/internal/handler/http/respond"
	"helpcenter/internal/repository"
	catUC "helpcenter/internal/usecase/category"
)

// Service is implemented by *catUC.Service.
type Service interface {
	List(ctx context.Context) ([]repository.CategoryWithCount, error)
	GetWithArticles(ctx context.Context, slug string) (*entity.Category, []*entity.Article, error)
	Create(ctx context.Context, in catUC.Input) (*entity.Category, error)
	Update(ctx context.Context, id int64, in catUC.Input) (*entity.Category, error)
	Delete(ctx context.Context, id int64) error
}

type DTO struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Position     int       `json:"position"`
	ArticleCount *int64    `json:"article_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// PageDTO is the public category page.
type PageDTO struct {
	Category DTO                  `json:"category"`
	Articles []article.SummaryDTO `json:"articles"`
}

type request struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Position    int    `json:"position"`
}

var errInvalidBody = errors.New("invalid request body")

// Register mounts the public category routes and the /admin/categories routes.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /categories", ListHandler{Svc: svc})
	mux.Handle("GET /categories/{slug}", GetHandler{Svc: svc})

	mux.Handle("GET /admin/categories", auth.Authz(ListHandler{Svc: svc}))
	mux.Handle("POST /admin/categories", auth.Authz(CreateHandler{Svc: svc}))
	mux.Handle("PUT /admin/categories/{id}", auth.Authz(UpdateHandler{Svc: svc}))
	mux.Handle("DELETE /admin/categories/{id}", auth.Authz(DeleteHandler{Svc: svc}))
}

func toDTO(c *entity.Category) DTO {
	return DTO{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Position:    c.Position,
		CreatedAt:   c.CreatedAt,
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, catUC.ErrInvalidCategoryID), errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, catUC.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, catUC.ErrDuplicateSlug), errors.Is(err, catUC.ErrCategoryInUse):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// ListHandler returns the grid: categories by position with their published article count.
type ListHandler struct{ Svc Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	out := make([]DTO, 0, len(list))
	for _, c := range list {
		dto := toDTO(c.Category)
		count := c.ArticleCount
		dto.ArticleCount = &count
		out = append(out, dto)
	}
	respond.JSON(w, http.StatusOK, out)
}

// GetHandler returns a category page with its published articles.
type GetHandler struct{ Svc Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cat, articles, err := h.Svc.GetWithArticles(r.Context(), r.PathValue("slug"))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, PageDTO{Category: toDTO(cat), Articles: article.ToSummaries(articles)})
}

type CreateHandler struct{ Svc Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}
	cat, err := h.Svc.Create(r.Context(), catUC.Input(req))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	w.Header().Set("Location", "/admin/categories/"+strconv.FormatInt(cat.ID, 10))
	respond.JSON(w, http.StatusCreated, toDTO(cat))
}

type UpdateHandler struct{ Svc Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}
	cat, err := h.Svc.Update(r.Context(), id, catUC.Input(req))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(cat))
}

type DeleteHandler struct{ Svc Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
