package article

import (
	"net/http"

	"helpcenter/internal/handler/http/respond"
)

// SearchHandler runs the public keyword search over published articles.
//
//	GET /search?q=nota+fiscal
type SearchHandler struct{ Svc Service }

func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, ToSummaries(articles))
}
