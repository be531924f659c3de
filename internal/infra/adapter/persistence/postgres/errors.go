package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"helpcenter/internal/repository"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// wrapWriteErr annotates err with op and maps constraint violations to the
// repository sentinels.
func wrapWriteErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %w", op, repository.ErrDuplicate)
		case foreignKeyViolation:
			return fmt.Errorf("%s: %w", op, repository.ErrInUse)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
