package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound models absence; callers render a 404 or empty state.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate surfaces a uniqueness-constraint violation as a
	// user-facing duplicate error.
	ErrDuplicate = errors.New("duplicate value")
	// ErrInvalidParent rejects self-parenting and parent cycles at write time.
	ErrInvalidParent = errors.New("invalid parent reference")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
