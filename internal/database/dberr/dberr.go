// Package dberr classifies storage errors from PostgreSQL and SQLite.
package dberr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// IsDuplicate reports whether err is a unique constraint violation.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// Constraint returns the violated constraint as reported by the driver.
// PostgreSQL reports the constraint name; SQLite reports the column list
// ("teams.invite_code"), so callers match on a substring present in both.
func Constraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.Index(msg, "UNIQUE constraint failed:"); i >= 0 {
		return strings.TrimSpace(msg[i+len("UNIQUE constraint failed:"):])
	}
	return msg
}

// Violates reports whether err is a unique violation of a constraint whose
// name or column list contains fragment.
func Violates(err error, fragment string) bool {
	return IsDuplicate(err) && strings.Contains(Constraint(err), fragment)
}

// IsNotFound reports whether err is gorm's record-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
