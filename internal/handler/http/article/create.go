package article

import (
	"encoding/json"
	"errors"
	"net/http"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/handler/http/respond"
	artUC "helpcenter/internal/usecase/article"
)

var errInvalidBody = errors.New("invalid request body")

type createRequest struct {
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	CategoryID      int64  `json:"category_id"`
	Content         string `json:"content"`
	MetaDescription string `json:"meta_description"`
	ReadingTime     int    `json:"reading_time"`
	Type            string `json:"type"`
	Status          string `json:"status"`
}

type CreateHandler struct{ Svc Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	art, err := h.Svc.Create(r.Context(), artUC.CreateInput{
		Title:           req.Title,
		Slug:            req.Slug,
		CategoryID:      req.CategoryID,
		Content:         req.Content,
		MetaDescription: req.MetaDescription,
		ReadingTime:     req.ReadingTime,
		Type:            entity.ContentType(req.Type),
		Status:          entity.Status(req.Status),
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	w.Header().Set("Location", "/admin/articles/"+itoa(art.ID))
	respond.JSON(w, http.StatusCreated, toDTO(art))
}
