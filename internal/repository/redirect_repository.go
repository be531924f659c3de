package repository

import (
	"context"

	"helpcenter/internal/domain/entity"
)

type RedirectRepository interface {
	List(ctx context.Context) ([]*entity.Redirect, error)
	// GetByFromPath returns nil, nil when no redirect is registered for path.
	GetByFromPath(ctx context.Context, path string) (*entity.Redirect, error)
	Create(ctx context.Context, r *entity.Redirect) error
	// Upsert inserts r or replaces the target of the existing row with the same from_path.
	// It reports whether a new row was created.
	Upsert(ctx context.Context, r *entity.Redirect) (bool, error)
	Delete(ctx context.Context, id int64) error
	IncrementHits(ctx context.Context, id int64) error
}

type FeedbackRepository interface {
	Create(ctx context.Context, f *entity.Feedback) error
	ListByArticle(ctx context.Context, articleID int64) ([]*entity.Feedback, error)
	Summary(ctx context.Context, articleID int64) (*entity.FeedbackSummary, error)
}
