package article

import (
	"encoding/json"
	"net/http"
	"strconv"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/handler/http/pathutil"
	"helpcenter/internal/handler/http/respond"
	artUC "helpcenter/internal/usecase/article"
)

// updateRequest uses pointers so omitted fields stay untouched.
type updateRequest struct {
	Title           *string `json:"title"`
	Slug            *string `json:"slug"`
	CategoryID      *int64  `json:"category_id"`
	Content         *string `json:"content"`
	MetaDescription *string `json:"meta_description"`
	ReadingTime     *int    `json:"reading_time"`
	Type            *string `json:"type"`
	Status          *string `json:"status"`
}

type UpdateHandler struct{ Svc Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	in := artUC.UpdateInput{
		ID:              id,
		Title:           req.Title,
		Slug:            req.Slug,
		CategoryID:      req.CategoryID,
		Content:         req.Content,
		MetaDescription: req.MetaDescription,
		ReadingTime:     req.ReadingTime,
	}
	if req.Type != nil {
		t := entity.ContentType(*req.Type)
		in.Type = &t
	}
	if req.Status != nil {
		s := entity.Status(*req.Status)
		in.Status = &s
	}

	art, err := h.Svc.Update(r.Context(), in)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(art))
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
