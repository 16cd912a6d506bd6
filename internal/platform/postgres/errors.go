package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/usersvc/accounts-api/internal/store"
)

// PostgreSQL error codes.
const (
	uniqueViolationCode  = "23505"
	checkViolationCode   = "23514"
	notNullViolationCode = "23502"
)

// mapError translates a database error into the corresponding store
// sentinel, wrapping the original for context. Every database operation
// in this package routes its errors through here so the service layer
// only ever sees store errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrAccountNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			// The accounts table has a single unique constraint (email),
			// so any unique violation is an email collision. This is the
			// backstop for races that slip past the optimistic check.
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		case checkViolationCode, notNullViolationCode:
			return fmt.Errorf("constraint violation (%s): %w", pgErr.ConstraintName, err)
		}
	}

	return err
}

// IsUniqueViolation reports whether err is a PostgreSQL unique
// constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// checkRowsAffected converts a zero-row UPDATE into
// store.ErrAccountNotFound. UPDATEs against absent rows succeed at the
// SQL level, so the row count is the only signal.
func checkRowsAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrAccountNotFound
	}
	return nil
}
