package repository

import (
	"context"

	"helpcenter/internal/domain/entity"
)

// CategoryWithCount pairs a category with its number of published articles.
type CategoryWithCount struct {
	Category     *entity.Category
	ArticleCount int64
}

type CategoryRepository interface {
	List(ctx context.Context) ([]*entity.Category, error)
	ListWithCounts(ctx context.Context) ([]CategoryWithCount, error)
	Get(ctx context.Context, id int64) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id int64) error
}

type TagRepository interface {
	List(ctx context.Context) ([]*entity.Tag, error)
	Get(ctx context.Context, id int64) (*entity.Tag, error)
	Create(ctx context.Context, tag *entity.Tag) error
	Delete(ctx context.Context, id int64) error
	ListByArticle(ctx context.Context, articleID int64) ([]*entity.Tag, error)
	// SetArticleTags replaces the tag set of an article atomically.
	SetArticleTags(ctx context.Context, articleID int64, tagIDs []int64) error
}

// FAQFilter narrows FAQ listings.
type FAQFilter struct {
	CategoryID    *int64
	PublishedOnly bool
}

type FAQRepository interface {
	List(ctx context.Context, filter FAQFilter) ([]*entity.FAQ, error)
	Get(ctx context.Context, id int64) (*entity.FAQ, error)
	Create(ctx context.Context, faq *entity.FAQ) error
	Update(ctx context.Context, faq *entity.FAQ) error
	Delete(ctx context.Context, id int64) error
}
