package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/repository"
)

type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) repository.CategoryRepository {
	return &CategoryRepo{db: db}
}

func (repo *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	const query = `
SELECT id, name, slug, description, position, created_at
FROM categories
ORDER BY position, name`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories := make([]*entity.Category, 0, 16)
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Position, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// ListWithCounts returns every category with the number of its published articles.
func (repo *CategoryRepo) ListWithCounts(ctx context.Context) ([]repository.CategoryWithCount, error) {
	const query = `
SELECT c.id, c.name, c.slug, c.description, c.position, c.created_at,
       COUNT(a.id) AS article_count
FROM categories c
LEFT JOIN articles a ON a.category_id = c.id AND a.status = 'published'
GROUP BY c.id
ORDER BY c.position, c.name`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListWithCounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.CategoryWithCount, 0, 16)
	for rows.Next() {
		var c entity.Category
		var count int64
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Position, &c.CreatedAt, &count); err != nil {
			return nil, fmt.Errorf("ListWithCounts: Scan: %w", err)
		}
		result = append(result, repository.CategoryWithCount{Category: &c, ArticleCount: count})
	}
	return result, rows.Err()
}

func (repo *CategoryRepo) get(ctx context.Context, op, where string, arg any) (*entity.Category, error) {
	query := `
SELECT id, name, slug, description, position, created_at
FROM categories
WHERE ` + where + `
LIMIT 1`
	var c entity.Category
	err := repo.db.QueryRowContext(ctx, query, arg).
		Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Position, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

func (repo *CategoryRepo) Get(ctx context.Context, id int64) (*entity.Category, error) {
	return repo.get(ctx, "Get", "id = $1", id)
}

func (repo *CategoryRepo) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return repo.get(ctx, "GetBySlug", "slug = $1", slug)
}

func (repo *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	const query = `
INSERT INTO categories (name, slug, description, position, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query, c.Name, c.Slug, c.Description, c.Position, c.CreatedAt).
		Scan(&c.ID)
	if err != nil {
		return wrapWriteErr("Create", err)
	}
	return nil
}

func (repo *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	const query = `
UPDATE categories SET
       name        = $1,
       slug        = $2,
       description = $3,
       position    = $4
WHERE id = $5`
	res, err := repo.db.ExecContext(ctx, query, c.Name, c.Slug, c.Description, c.Position, c.ID)
	if err != nil {
		return wrapWriteErr("Update", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: %w", repository.ErrNotFound)
	}
	return nil
}

func (repo *CategoryRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM categories WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return wrapWriteErr("Delete", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: %w", repository.ErrNotFound)
	}
	return nil
}
