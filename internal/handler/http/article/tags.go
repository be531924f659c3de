package article

import (
	"encoding/json"
	"errors"
	"net/http"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/handler/http/pathutil"
	"helpcenter/internal/handler/http/respond"
	tagUC "helpcenter/internal/usecase/tag"
)

// SetTagsHandler replaces the tags of an article.
//
//	PUT /admin/articles/{id}/tags  {"tag_ids": [1, 4]}
type SetTagsHandler struct{ Tags TagSetter }

func (h SetTagsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		TagIDs []int64 `json:"tag_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	if err := h.Tags.SetArticleTags(r.Context(), id, req.TagIDs); err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, entity.ErrInvalidInput):
			code = http.StatusBadRequest
		case errors.Is(err, tagUC.ErrArticleNotFound):
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
