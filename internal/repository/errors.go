package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"league-registration/internal/domain"

	"github.com/mattn/go-sqlite3"
)

// IsUniqueViolation reports whether err is a unique or primary-key
// constraint failure.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// mapError translates driver errors into domain kinds. what names the entity
// for the message.
func mapError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.NotFound(what+" not found", err)
	case IsUniqueViolation(err):
		return domain.Conflict(what+" already exists", err)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}
