// Package tag serves the admin tag endpoints and the tag list of an article.
package tag

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/handler/http/auth"
	"helpcenter/internal/handler/http/pathutil"
	"helpcenter/internal/handler/http/respond"
	tagUC "helpcenter/internal/usecase/tag"
)

// Service is implemented by *tagUC.Service.
type Service interface {
	List(ctx context.Context) ([]*entity.Tag, error)
	Create(ctx context.Context, name string) (*entity.Tag, error)
	Delete(ctx context.Context, id int64) error
	ListByArticle(ctx context.Context, articleID int64) ([]*entity.Tag, error)
}

type DTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

var errInvalidBody = errors.New("invalid request body")

func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /articles/{id}/tags", ArticleTagsHandler{Svc: svc})

	mux.Handle("GET /admin/tags", auth.Authz(ListHandler{Svc: svc}))
	mux.Handle("POST /admin/tags", auth.Authz(CreateHandler{Svc: svc}))
	mux.Handle("DELETE /admin/tags/{id}", auth.Authz(DeleteHandler{Svc: svc}))
}

func toDTOs(tags []*entity.Tag) []DTO {
	out := make([]DTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, DTO{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	return out
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, tagUC.ErrInvalidTagID), errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, tagUC.ErrTagNotFound), errors.Is(err, tagUC.ErrArticleNotFound):
		return http.StatusNotFound
	case errors.Is(err, tagUC.ErrDuplicateTag):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

type ListHandler struct{ Svc Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tags, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(tags))
}

// ArticleTagsHandler lists the tags of one article, ordered by name.
type ArticleTagsHandler struct{ Svc Service }

func (h ArticleTagsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	tags, err := h.Svc.ListByArticle(r.Context(), id)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(tags))
}

type CreateHandler struct{ Svc Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}
	t, err := h.Svc.Create(r.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	w.Header().Set("Location", "/admin/tags/"+strconv.FormatInt(t.ID, 10))
	respond.JSON(w, http.StatusCreated, DTO{ID: t.ID, Name: t.Name, Slug: t.Slug})
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
