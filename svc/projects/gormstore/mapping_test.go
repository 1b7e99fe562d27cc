package gormstore

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/projectkeys/pkg/projectkey"
	"github.com/dmitrymomot/projectkeys/svc/projects"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, mapError(nil))
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: "23505", ConstraintName: keyIndexName}), projects.ErrDuplicateKey)
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: "23505", ConstraintName: primaryKeyName}), projects.ErrProjectExists)
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: "23514"}), projectkey.ErrBadFormat)

	other := errors.New("connection refused")
	assert.Equal(t, other, mapError(other))
}
