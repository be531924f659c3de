// Package faq serves the public FAQ list and the admin FAQ endpoints.
package faq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/handler/http/auth"
	"helpcenter/internal/handler/http/pathutil"
	"helpcenter/internal/handler/http/respond"
	faqUC "helpcenter/internal/usecase/faq"
)

// Service is implemented by *faqUC.Service.
type Service interface {
	ListPublished(ctx context.Context, categoryID *int64) ([]*entity.FAQ, error)
	ListAll(ctx context.Context) ([]*entity.FAQ, error)
	Create(ctx context.Context, in faqUC.Input) (*entity.FAQ, error)
	Update(ctx context.Context, id int64, in faqUC.Input) (*entity.FAQ, error)
	Delete(ctx context.Context, id int64) error
}

type DTO struct {
	ID         int64     `json:"id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	CategoryID *int64    `json:"category_id"`
	Position   int       `json:"position"`
	Published  bool      `json:"published"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type request struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	CategoryID *int64 `json:"category_id"`
	Position   int    `json:"position"`
	Published  bool   `json:"published"`
}

var (
	errInvalidBody     = errors.New("invalid request body")
	errInvalidCategory = errors.New("invalid query parameter: category_id must be a positive integer")
)

func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /faqs", PublicListHandler{Svc: svc})

	mux.Handle("GET /admin/faqs", auth.Authz(AdminListHandler{Svc: svc}))
	mux.Handle("POST /admin/faqs", auth.Authz(CreateHandler{Svc: svc}))
	mux.Handle("PUT /admin/faqs/{id}", auth.Authz(UpdateHandler{Svc: svc}))
	mux.Handle("DELETE /admin/faqs/{id}", auth.Authz(DeleteHandler{Svc: svc}))
}

func toDTO(f *entity.FAQ) DTO {
	return DTO{
		ID:         f.ID,
		Question:   f.Question,
		Answer:     f.Answer,
		CategoryID: f.CategoryID,
		Position:   f.Position,
		Published:  f.Published,
		UpdatedAt:  f.UpdatedAt,
	}
}

func toDTOs(list []*entity.FAQ) []DTO {
	out := make([]DTO, 0, len(list))
	for _, f := range list {
		out = append(out, toDTO(f))
	}
	return out
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, faqUC.ErrInvalidFAQID), errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, faqUC.ErrFAQNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// PublicListHandler returns the published FAQs, optionally filtered by ?category_id=.
type PublicListHandler struct{ Svc Service }

func (h PublicListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var categoryID *int64
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respond.SafeError(w, http.StatusBadRequest, errInvalidCategory)
			return
		}
		categoryID = &id
	}
	list, err := h.Svc.ListPublished(r.Context(), categoryID)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(list))
}

type AdminListHandler struct{ Svc Service }

func (h AdminListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.ListAll(r.Context())
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(list))
}

type CreateHandler struct{ Svc Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}
	f, err := h.Svc.Create(r.Context(), faqUC.Input(req))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	w.Header().Set("Location", "/admin/faqs/"+strconv.FormatInt(f.ID, 10))
	respond.JSON(w, http.StatusCreated, toDTO(f))
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
	f, err := h.Svc.Update(r.Context(), id, faqUC.Input(req))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(f))
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
