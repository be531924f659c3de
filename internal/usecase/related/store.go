package related

import (
	"context"
	"time"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/repository"
)

// Store is the read-only data access the scorer needs.
// GetArticle returns nil, nil for an unknown id.
type Store interface {
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	ListArticles(ctx context.Context, filter repository.ArticleFilter) ([]*entity.Article, error)
	GetArticle(ctx context.Context, id int64) (*entity.Article, error)
}

// RepoStore adapts the PostgreSQL repositories to Store.
type RepoStore struct {
	Articles   repository.ArticleRepository
	Categories repository.CategoryRepository
}

func (s RepoStore) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return s.Categories.List(ctx)
}

func (s RepoStore) ListArticles(ctx context.Context, filter repository.ArticleFilter) ([]*entity.Article, error) {
	return s.Articles.List(ctx, filter)
}

func (s RepoStore) GetArticle(ctx context.Context, id int64) (*entity.Article, error) {
	return s.Articles.Get(ctx, id)
}

// Clock supplies the current time to the recency rule.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
