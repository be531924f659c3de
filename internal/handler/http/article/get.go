package article

import (
	"net/http"

	"helpcenter/internal/handler/http/pathutil"
	"helpcenter/internal/handler/http/respond"
)

// GetBySlugHandler serves the public article page. Only published articles are
// visible and every hit counts as a view.
type GetBySlugHandler struct{ Svc Service }

func (h GetBySlugHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	art, err := h.Svc.GetPublished(r.Context(), r.PathValue("slug"))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(art))
}

// GetHandler returns any article by id, drafts included.
type GetHandler struct{ Svc Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	art, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(art))
}
