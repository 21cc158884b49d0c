package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrConstraint reports a row rejected by a CHECK constraint.
var ErrConstraint = errors.New("constraint violation")

// translate maps driver errors the services care about onto sentinel errors.
// A missing foreign key row reads as pgx.ErrNoRows so callers see "not found".
func translate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, pgx.ErrNoRows)
	case pgerrcode.CheckViolation:
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, ErrConstraint)
	case pgerrcode.InvalidTextRepresentation:
		// malformed uuid in a lookup
		return pgx.ErrNoRows
	}
	return err
}
