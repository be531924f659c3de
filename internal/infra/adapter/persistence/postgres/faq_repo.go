package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/repository"
)

const faqColumns = `id, question, answer, category_id, position, published, created_at, updated_at`

type FAQRepo struct {
	db *sql.DB
}

func NewFAQRepo(db *sql.DB) repository.FAQRepository {
	return &FAQRepo{db: db}
}

func scanFAQ(s rowScanner) (*entity.FAQ, error) {
	var f entity.FAQ
	var categoryID sql.NullInt64
	if err := s.Scan(&f.ID, &f.Question, &f.Answer, &categoryID, &f.Position,
		&f.Published, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	if categoryID.Valid {
		id := categoryID.Int64
		f.CategoryID = &id
	}
	return &f, nil
}

func (repo *FAQRepo) List(ctx context.Context, filter repository.FAQFilter) ([]*entity.FAQ, error) {
	var conditions []string
	var args []any
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.PublishedOnly {
		conditions = append(conditions, "published = TRUE")
	}
	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
SELECT %s
FROM faqs
%s
ORDER BY position, id`, faqColumns, where)
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	faqs := make([]*entity.FAQ, 0, 16)
	for rows.Next() {
		f, err := scanFAQ(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		faqs = append(faqs, f)
	}
	return faqs, rows.Err()
}

func (repo *FAQRepo) Get(ctx context.Context, id int64) (*entity.FAQ, error) {
	query := `SELECT ` + faqColumns + ` FROM faqs WHERE id = $1 LIMIT 1`
	f, err := scanFAQ(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return f, nil
}

func (repo *FAQRepo) Create(ctx context.Context, f *entity.FAQ) error {
	const query = `
INSERT INTO faqs (question, answer, category_id, position, published, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		f.Question, f.Answer, f.CategoryID, f.Position, f.Published, f.CreatedAt, f.UpdatedAt,
	).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *FAQRepo) Update(ctx context.Context, f *entity.FAQ) error {
	const query = `
UPDATE faqs SET
       question    = $1,
       answer      = $2,
       category_id = $3,
       position    = $4,
       published   = $5,
       updated_at  = $6
WHERE id = $7`
	res, err := repo.db.ExecContext(ctx, query,
		f.Question, f.Answer, f.CategoryID, f.Position, f.Published, f.UpdatedAt, f.ID)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: %w", repository.ErrNotFound)
	}
	return nil
}

func (repo *FAQRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM faqs WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: %w", repository.ErrNotFound)
	}
	return nil
}
