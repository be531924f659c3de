package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/repository"
)

type FeedbackRepo struct {
	db *sql.DB
}

func NewFeedbackRepo(db *sql.DB) repository.FeedbackRepository {
	return &FeedbackRepo{db: db}
}

func (repo *FeedbackRepo) Create(ctx context.Context, f *entity.Feedback) error {
	const query = `
INSERT INTO feedback (article_id, helpful, comment, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query, f.ArticleID, f.Helpful, f.Comment, f.CreatedAt).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *FeedbackRepo) ListByArticle(ctx context.Context, articleID int64) ([]*entity.Feedback, error) {
	const query = `
SELECT id, article_id, helpful, comment, created_at
FROM feedback
WHERE article_id = $1
ORDER BY created_at DESC`
	rows, err := repo.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("ListByArticle: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]*entity.Feedback, 0, 32)
	for rows.Next() {
		var f entity.Feedback
		if err := rows.Scan(&f.ID, &f.ArticleID, &f.Helpful, &f.Comment, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListByArticle: Scan: %w", err)
		}
		result = append(result, &f)
	}
	return result, rows.Err()
}

func (repo *FeedbackRepo) Summary(ctx context.Context, articleID int64) (*entity.FeedbackSummary, error) {
	const query = `
SELECT COUNT(*) FILTER (WHERE helpful),
       COUNT(*) FILTER (WHERE NOT helpful)
FROM feedback
WHERE article_id = $1`
	s := &entity.FeedbackSummary{ArticleID: articleID}
	if err := repo.db.QueryRowContext(ctx, query, articleID).Scan(&s.Helpful, &s.Unhelpful); err != nil {
		return nil, fmt.Errorf("Summary: %w", err)
	}
	return s, nil
}
