package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/userbase-api/internal/store"
)

// isUniqueConstraintError reports whether err is a SQLite unique constraint
// violation.
func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isConstraintError reports whether err is any other SQLite constraint
// violation (NOT NULL, CHECK, FOREIGN KEY).
func isConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}

// mapError translates driver errors into store errors. Errors without a
// mapping are returned unchanged.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	case isUniqueConstraintError(err):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case isConstraintError(err):
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	return err
}
