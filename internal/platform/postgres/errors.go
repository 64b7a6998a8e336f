package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/userbase-api/internal/store"
)

// SQLSTATE codes from the integrity constraint violation class (23).
const (
	codeNotNull = "23502"
	codeUnique  = "23505"
	codeCheck   = "23514"
)

// pgError extracts the *pgconn.PgError carried by err, if any.
func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// MapError classifies err into the store error family. The result wraps both
// the store sentinel and err, so pgconn detail survives for errors.As.
// Unclassified errors come back unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}

	pgErr, ok := pgError(err)
	if !ok {
		return err
	}
	switch pgErr.Code {
	case codeUnique:
		return fmt.Errorf("%w: %w", store.ErrDuplicate, err)
	case codeCheck:
		return fmt.Errorf("%w: constraint %s: %w", store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case codeNotNull:
		return fmt.Errorf("%w: column %s is required: %w", store.ErrInvalidEntity, pgErr.ColumnName, err)
	default:
		return err
	}
}

// IsUniqueViolation reports whether err carries SQLSTATE 23505.
func IsUniqueViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == codeUnique
}

// MapUniqueViolation wraps err with specific when it is a unique violation.
func MapUniqueViolation(err error, specific error) error {
	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: %w", specific, err)
	}
	return err
}

// CheckRowsAffected returns notFound (store.ErrNotFound when nil) if result
// reports zero affected rows. UPDATE and DELETE by primary key use it.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return errors.New("check rows affected: nil result")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	if notFound == nil {
		return store.ErrNotFound
	}
	return notFound
}
