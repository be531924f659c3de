package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/repository"
)

type RedirectRepo struct {
	db *sql.DB
}

func NewRedirectRepo(db *sql.DB) repository.RedirectRepository {
	return &RedirectRepo{db: db}
}

func (repo *RedirectRepo) List(ctx context.Context) ([]*entity.Redirect, error) {
	const query = `
SELECT id, from_path, to_path, status_code, hits, created_at
FROM redirects
ORDER BY from_path`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	redirects := make([]*entity.Redirect, 0, 64)
	for rows.Next() {
		var r entity.Redirect
		if err := rows.Scan(&r.ID, &r.FromPath, &r.ToPath, &r.StatusCode, &r.Hits, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		redirects = append(redirects, &r)
	}
	return redirects, rows.Err()
}

func (repo *RedirectRepo) GetByFromPath(ctx context.Context, path string) (*entity.Redirect, error) {
	const query = `
SELECT id, from_path, to_path, status_code, hits, created_at
FROM redirects
WHERE from_path = $1
LIMIT 1`
	var r entity.Redirect
	err := repo.db.QueryRowContext(ctx, query, path).
		Scan(&r.ID, &r.FromPath, &r.ToPath, &r.StatusCode, &r.Hits, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByFromPath: %w", err)
	}
	return &r, nil
}

func (repo *RedirectRepo) Create(ctx context.Context, r *entity.Redirect) error {
	const query = `
INSERT INTO redirects (from_path, to_path, status_code, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query, r.FromPath, r.ToPath, r.StatusCode, r.CreatedAt).Scan(&r.ID)
	if err != nil {
		return wrapWriteErr("Create", err)
	}
	return nil
}

// Upsert relies on xmax = 0 to tell a fresh insert from an updated row.
func (repo *RedirectRepo) Upsert(ctx context.Context, r *entity.Redirect) (bool, error) {
	const query = `
INSERT INTO redirects (from_path, to_path, status_code, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (from_path) DO UPDATE SET
       to_path     = EXCLUDED.to_path,
       status_code = EXCLUDED.status_code
RETURNING id, (xmax = 0) AS inserted`
	var inserted bool
	err := repo.db.QueryRowContext(ctx, query, r.FromPath, r.ToPath, r.StatusCode, r.CreatedAt).
		Scan(&r.ID, &inserted)
	if err != nil {
		return false, fmt.Errorf("Upsert: %w", err)
	}
	return inserted, nil
}

func (repo *RedirectRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM redirects WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: %w", repository.ErrNotFound)
	}
	return nil
}

func (repo *RedirectRepo) IncrementHits(ctx context.Context, id int64) error {
	const query = `UPDATE redirects SET hits = hits + 1 WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("IncrementHits: %w", err)
	}
	return nil
}
