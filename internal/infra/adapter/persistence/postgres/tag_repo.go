package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/repository"
)

type TagRepo struct {
	db *sql.DB
}

func NewTagRepo(db *sql.DB) repository.TagRepository {
	return &TagRepo{db: db}
}

func (repo *TagRepo) scanTags(rows *sql.Rows, op string) ([]*entity.Tag, error) {
	defer func() { _ = rows.Close() }()
	tags := make([]*entity.Tag, 0, 16)
	for rows.Next() {
		var tag entity.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		tags = append(tags, &tag)
	}
	return tags, rows.Err()
}

func (repo *TagRepo) List(ctx context.Context) ([]*entity.Tag, error) {
	const query = `SELECT id, name, slug FROM tags ORDER BY name`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return repo.scanTags(rows, "List")
}

func (repo *TagRepo) Get(ctx context.Context, id int64) (*entity.Tag, error) {
	const query = `SELECT id, name, slug FROM tags WHERE id = $1 LIMIT 1`
	var tag entity.Tag
	err := repo.db.QueryRowContext(ctx, query, id).Scan(&tag.ID, &tag.Name, &tag.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &tag, nil
}

func (repo *TagRepo) Create(ctx context.Context, tag *entity.Tag) error {
	const query = `INSERT INTO tags (name, slug) VALUES ($1, $2) RETURNING id`
	if err := repo.db.QueryRowContext(ctx, query, tag.Name, tag.Slug).Scan(&tag.ID); err != nil {
		return wrapWriteErr("Create", err)
	}
	return nil
}

func (repo *TagRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM tags WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: %w", repository.ErrNotFound)
	}
	return nil
}

func (repo *TagRepo) ListByArticle(ctx context.Context, articleID int64) ([]*entity.Tag, error) {
	const query = `
SELECT t.id, t.name, t.slug
FROM tags t
INNER JOIN article_tags at ON at.tag_id = t.id
WHERE at.article_id = $1
ORDER BY t.name`
	rows, err := repo.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("ListByArticle: %w", err)
	}
	return repo.scanTags(rows, "ListByArticle")
}

// SetArticleTags replaces the tag set of an article inside a single transaction.
func (repo *TagRepo) SetArticleTags(ctx context.Context, articleID int64, tagIDs []int64) (err error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("SetArticleTags: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM article_tags WHERE article_id = $1`, articleID); err != nil {
		return fmt.Errorf("SetArticleTags: clear: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO article_tags (article_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			articleID, tagID); err != nil {
			return fmt.Errorf("SetArticleTags: insert: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("SetArticleTags: commit: %w", err)
	}
	return nil
}
