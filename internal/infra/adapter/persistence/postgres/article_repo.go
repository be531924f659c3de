package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/pkg/search"
	"helpcenter/internal/repository"
)

const articleColumns = `id, slug, title, category_id, content, meta_description,
       views, reading_time, type, status, published_at, created_at, updated_at`

type ArticleRepo struct {
	db           *sql.DB
	queryBuilder *ArticleQueryBuilder
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{
		db:           db,
		queryBuilder: NewArticleQueryBuilder(),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(s rowScanner) (*entity.Article, error) {
	var a entity.Article
	var published sql.NullTime
	if err := s.Scan(&a.ID, &a.Slug, &a.Title, &a.CategoryID, &a.Content, &a.MetaDescription,
		&a.Views, &a.ReadingTime, &a.Type, &a.Status, &published, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	if published.Valid {
		t := published.Time
		a.PublishedAt = &t
	}
	return &a, nil
}

func (repo *ArticleRepo) queryArticles(ctx context.Context, op, query string, args ...any) ([]*entity.Article, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 32)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func (repo *ArticleRepo) List(ctx context.Context, filter repository.ArticleFilter) ([]*entity.Article, error) {
	where, args := repo.queryBuilder.BuildWhereClause(nil, filter)
	query := fmt.Sprintf(`
SELECT %s
FROM articles
%s
ORDER BY published_at DESC NULLS LAST, id DESC`, articleColumns, where)
	return repo.queryArticles(ctx, "List", query, args...)
}

// ListPaginated retrieves one page of articles using LIMIT and OFFSET.
func (repo *ArticleRepo) ListPaginated(ctx context.Context, filter repository.ArticleFilter, offset, limit int) ([]*entity.Article, error) {
	where, args := repo.queryBuilder.BuildWhereClause(nil, filter)
	paramIndex := len(args) + 1
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
SELECT %s
FROM articles
%s
ORDER BY updated_at DESC, id DESC
LIMIT $%d OFFSET $%d`, articleColumns, where, paramIndex, paramIndex+1)
	return repo.queryArticles(ctx, "ListPaginated", query, args...)
}

func (repo *ArticleRepo) Count(ctx context.Context, filter repository.ArticleFilter) (int64, error) {
	where, args := repo.queryBuilder.BuildWhereClause(nil, filter)
	query := "SELECT COUNT(*) FROM articles " + where

	var count int64
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	query := `SELECT ` + articleColumns + `
FROM articles
WHERE id = $1
LIMIT 1`
	a, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return a, nil
}

func (repo *ArticleRepo) GetBySlug(ctx context.Context, slug string) (*entity.Article, error) {
	query := `SELECT ` + articleColumns + `
FROM articles
WHERE slug = $1
LIMIT 1`
	a, err := scanArticle(repo.db.QueryRowContext(ctx, query, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetBySlug: %w", err)
	}
	return a, nil
}

func (repo *ArticleRepo) Search(ctx context.Context, keywords []string, filter repository.ArticleFilter) ([]*entity.Article, error) {
	if len(keywords) == 0 {
		return []*entity.Article{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, search.DefaultSearchTimeout)
	defer cancel()

	where, args := repo.queryBuilder.BuildWhereClause(keywords, filter)
	query := fmt.Sprintf(`
SELECT %s
FROM articles
%s
ORDER BY views DESC, published_at DESC NULLS LAST
LIMIT 50`, articleColumns, where)
	return repo.queryArticles(ctx, "Search", query, args...)
}

func (repo *ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	const query = `
INSERT INTO articles
       (slug, title, category_id, content, meta_description, reading_time,
        type, status, published_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		a.Slug, a.Title, a.CategoryID, a.Content, a.MetaDescription, a.ReadingTime,
		string(a.Type), string(a.Status), a.PublishedAt, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return wrapWriteErr("Create", err)
	}
	return nil
}

func (repo *ArticleRepo) Update(ctx context.Context, a *entity.Article) error {
	const query = `
UPDATE articles SET
       slug             = $1,
       title            = $2,
       category_id      = $3,
       content          = $4,
       meta_description = $5,
       reading_time     = $6,
       type             = $7,
       status           = $8,
       published_at     = $9,
       updated_at       = $10
WHERE id = $11`
	res, err := repo.db.ExecContext(ctx, query,
		a.Slug, a.Title, a.CategoryID, a.Content, a.MetaDescription, a.ReadingTime,
		string(a.Type), string(a.Status), a.PublishedAt, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return wrapWriteErr("Update", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: %w", repository.ErrNotFound)
	}
	return nil
}

func (repo *ArticleRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM articles WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: %w", repository.ErrNotFound)
	}
	return nil
}

func (repo *ArticleRepo) IncrementViews(ctx context.Context, id int64) error {
	const query = `UPDATE articles SET views = views + 1 WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("IncrementViews: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) ExistsBySlug(ctx context.Context, slug string, excludeID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM articles WHERE slug = $1 AND id <> $2)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsBySlug: %w", err)
	}
	return exists, nil
}
