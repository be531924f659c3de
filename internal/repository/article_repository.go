package repository

import (
	"context"
	"errors"

	"helpcenter/internal/domain/entity"
)

var (
	// ErrDuplicate is returned when an insert or update violates a unique key (slug, from_path).
	ErrDuplicate = errors.New("duplicate key")
	// ErrNotFound is returned by Update and Delete when no row has the given id.
	ErrNotFound = errors.New("no rows affected")
	// ErrInUse is returned when a delete is refused because other rows reference the record.
	ErrInUse = errors.New("record is referenced")
)

// ArticleFilter narrows article listings. Nil fields are not applied.
type ArticleFilter struct {
	Status     *entity.Status
	CategoryID *int64
}

// PublishedFilter returns the filter used by every public listing.
func PublishedFilter() ArticleFilter {
	s := entity.StatusPublished
	return ArticleFilter{Status: &s}
}

type ArticleRepository interface {
	// List returns every article matching filter, newest publication first.
	List(ctx context.Context, filter ArticleFilter) ([]*entity.Article, error)
	// ListPaginated returns one page of List using LIMIT/OFFSET.
	ListPaginated(ctx context.Context, filter ArticleFilter, offset, limit int) ([]*entity.Article, error)
	// Count returns the number of rows List would return.
	Count(ctx context.Context, filter ArticleFilter) (int64, error)
	// Get returns nil, nil when the article does not exist.
	Get(ctx context.Context, id int64) (*entity.Article, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Article, error)
	// Search matches every keyword (AND) against title and content.
	Search(ctx context.Context, keywords []string, filter ArticleFilter) ([]*entity.Article, error)
	// Create stores article and fills its ID.
	Create(ctx context.Context, article *entity.Article) error
	Update(ctx context.Context, article *entity.Article) error
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error
	// ExistsBySlug reports whether another article (id != excludeID) already uses slug.
	ExistsBySlug(ctx context.Context, slug string, excludeID int64) (bool, error)
}
