// Package redirect serves legacy-URL resolution and the admin redirect endpoints,
// including the CSV bulk import.
package redirect

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/handler/http/auth"
	"helpcenter/internal/handler/http/pathutil"
	"helpcenter/internal/handler/http/respond"
	redirectUC "helpcenter/internal/usecase/redirect"
)

// Service is implemented by *redirectUC.Service.
type Service interface {
	List(ctx context.Context) ([]*entity.Redirect, error)
	Create(ctx context.Context, in redirectUC.Input) (*entity.Redirect, error)
	Delete(ctx context.Context, id int64) error
	Resolve(ctx context.Context, path string) (*entity.Redirect, error)
	Import(ctx context.Context, r io.Reader) (*redirectUC.ImportReport, error)
}

type DTO struct {
	ID         int64     `json:"id"`
	FromPath   string    `json:"from"`
	ToPath     string    `json:"to"`
	StatusCode int       `json:"status"`
	Hits       int64     `json:"hits"`
	CreatedAt  time.Time `json:"created_at"`
}

// ResolveDTO is the public answer for a legacy path.
type ResolveDTO struct {
	To     string `json:"to"`
	Status int    `json:"status"`
}

type request struct {
	FromPath   string `json:"from"`
	ToPath     string `json:"to"`
	StatusCode int    `json:"status"`
}

var (
	errInvalidBody  = errors.New("invalid request body")
	errPathRequired = errors.New("path query parameter is required")
	errBodyTooLarge = errors.New("request body too large")
)

func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /redirects/resolve", ResolveHandler{Svc: svc})

	mux.Handle("GET /admin/redirects", auth.Authz(ListHandler{Svc: svc}))
	mux.Handle("POST /admin/redirects", auth.Authz(CreateHandler{Svc: svc}))
	mux.Handle("DELETE /admin/redirects/{id}", auth.Authz(DeleteHandler{Svc: svc}))
	mux.Handle("POST /admin/redirects/import", auth.Authz(ImportHandler{Svc: svc}))
}

func toDTO(r *entity.Redirect) DTO {
	return DTO{
		ID:         r.ID,
		FromPath:   r.FromPath,
		ToPath:     r.ToPath,
		StatusCode: r.StatusCode,
		Hits:       r.Hits,
		CreatedAt:  r.CreatedAt,
	}
}

func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, redirectUC.ErrInvalidRedirectID), errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, redirectUC.ErrRedirectNotFound):
		return http.StatusNotFound
	case errors.Is(err, redirectUC.ErrDuplicateRedirect):
		return http.StatusConflict
	case errors.Is(err, redirectUC.ErrImportTooLarge), errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

// ResolveHandler looks up ?path= and counts the hit. The frontend performs the redirect.
type ResolveHandler struct{ Svc Service }

func (h ResolveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		respond.SafeError(w, http.StatusBadRequest, errPathRequired)
		return
	}
	red, err := h.Svc.Resolve(r.Context(), path)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, ResolveDTO{To: red.ToPath, Status: red.StatusCode})
}

type ListHandler struct{ Svc Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	out := make([]DTO, 0, len(list))
	for _, red := range list {
		out = append(out, toDTO(red))
	}
	respond.JSON(w, http.StatusOK, out)
}

type CreateHandler struct{ Svc Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}
	red, err := h.Svc.Create(r.Context(), redirectUC.Input(req))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	w.Header().Set("Location", "/admin/redirects/"+strconv.FormatInt(red.ID, 10))
	respond.JSON(w, http.StatusCreated, toDTO(red))
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

// ImportHandler reads a text/csv body of "from,to[,status]" rows.
// Rejected rows are listed in the report; only unreadable CSV fails the request.
type ImportHandler struct{ Svc Service }

func (h ImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	report, err := h.Svc.Import(r.Context(), r.Body)
	if err != nil {
		var parseErr *csv.ParseError
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			respond.SafeError(w, http.StatusRequestEntityTooLarge, errBodyTooLarge)
		case errors.As(err, &parseErr):
			respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid csv at line %d", parseErr.Line))
		default:
			respond.SafeError(w, statusFor(err), err)
		}
		return
	}
	respond.JSON(w, http.StatusOK, report)
}
