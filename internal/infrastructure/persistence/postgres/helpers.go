package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/domainerr"
)

// scannable abstracts pgx.Row and pgx.Rows for shared scan helpers.
type scannable interface {
	Scan(dest ...any) error
}

// notFound maps pgx.ErrNoRows onto the domain error taxonomy so callers can
// branch on the kind instead of a driver sentinel.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domainerr.NotFound(format, args...)
	}
	return err
}
