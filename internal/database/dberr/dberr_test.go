package dberr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/festy23/hackathon_teams/internal/database/dbtest"
)

type uniqueRow struct {
	ID   int    `gorm:"primaryKey"`
	Code string `gorm:"uniqueIndex:uq_unique_rows_code"`
}

func TestIsDuplicate(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_teams_invite_code"}

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, true},
		{"postgres unique violation", fmt.Errorf("insert: %w", pgErr), true},
		{"postgres other error", &pgconn.PgError{Code: "23503"}, false},
		{"postgres message", errors.New(`ERROR: duplicate key value violates unique constraint "uq_teams_name"`), true},
		{"sqlite message", errors.New("UNIQUE constraint failed: teams.name"), true},
		{"unrelated", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDuplicate(tt.err))
		})
	}
}

func TestConstraint(t *testing.T) {
	assert.Equal(t, "uq_teams_invite_code",
		Constraint(&pgconn.PgError{Code: "23505", ConstraintName: "uq_teams_invite_code"}))
	assert.Equal(t, "teams.invite_code", Constraint(errors.New("UNIQUE constraint failed: teams.invite_code")))
	assert.Equal(t, "", Constraint(nil))
}

func TestViolates_SQLite(t *testing.T) {
	db := dbtest.Open(t, &uniqueRow{})
	assert.NoError(t, db.Create(&uniqueRow{ID: 1, Code: "K7QX9M"}).Error)

	err := db.Create(&uniqueRow{ID: 2, Code: "K7QX9M"}).Error

	assert.True(t, IsDuplicate(err))
	assert.True(t, Violates(err, "code"))
	assert.False(t, Violates(err, "name"))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound)))
	assert.False(t, IsNotFound(errors.New("other")))
}
