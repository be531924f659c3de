package article

import (
	"context"
	"errors"
	"net/http"

	"helpcenter/internal/common/pagination"
	"helpcenter/internal/domain/entity"
	"helpcenter/internal/pkg/search"
	artUC "helpcenter/internal/usecase/article"
)

// Service is the part of the article use case the handlers call.
// *artUC.Service implements it.
type Service interface {
	Get(ctx context.Context, id int64) (*entity.Article, error)
	GetPublished(ctx context.Context, slug string) (*entity.Article, error)
	ListPaginated(ctx context.Context, f artUC.ListFilter, params pagination.Params) (*artUC.PaginatedResult, error)
	Search(ctx context.Context, query string) ([]*entity.Article, error)
	Create(ctx context.Context, in artUC.CreateInput) (*entity.Article, error)
	Update(ctx context.Context, in artUC.UpdateInput) (*entity.Article, error)
	Delete(ctx context.Context, id int64) error
}

// TagSetter replaces the tag set of an article. *tagUC.Service implements it.
type TagSetter interface {
	SetArticleTags(ctx context.Context, articleID int64, tagIDs []int64) error
}

// statusFor maps use case errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, artUC.ErrInvalidArticleID),
		errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, search.ErrEmptyQuery),
		errors.Is(err, search.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, artUC.ErrArticleNotFound):
		return http.StatusNotFound
	case errors.Is(err, artUC.ErrDuplicateSlug):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
