package article

import (
	"log/slog"
	"net/http"

	"helpcenter/internal/common/pagination"
	"helpcenter/internal/handler/http/auth"
)

// Register mounts the public article routes and the /admin/articles routes.
// Admin routes are wrapped in auth.Authz.
func Register(mux *http.ServeMux, svc Service, tags TagSetter, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /articles/{slug}", GetBySlugHandler{Svc: svc})
	mux.Handle("GET /search", SearchHandler{Svc: svc})

	mux.Handle("GET /admin/articles", auth.Authz(ListHandler{Svc: svc, PaginationCfg: paginationCfg, Logger: logger}))
	mux.Handle("POST /admin/articles", auth.Authz(CreateHandler{Svc: svc}))
	mux.Handle("GET /admin/articles/{id}", auth.Authz(GetHandler{Svc: svc}))
	mux.Handle("PUT /admin/articles/{id}", auth.Authz(UpdateHandler{Svc: svc}))
	mux.Handle("DELETE /admin/articles/{id}", auth.Authz(DeleteHandler{Svc: svc}))
	mux.Handle("PUT /admin/articles/{id}/tags", auth.Authz(SetTagsHandler{Tags: tags}))
}
