package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	require.False(t, IsUniqueViolation(nil))
	require.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	require.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	require.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	require.True(t, IsUniqueViolation(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	require.False(t, IsUniqueViolation(&mysql.MySQLError{Number: 1452}))
	require.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: articles.slug")))
	require.False(t, IsUniqueViolation(errors.New("FOREIGN KEY constraint failed")))
}

func TestIsUniqueViolationOn(t *testing.T) {
	sqliteErr := errors.New("UNIQUE constraint failed: articles.slug")
	require.True(t, IsUniqueViolationOn(sqliteErr, "slug"))
	require.False(t, IsUniqueViolationOn(sqliteErr, "name"))

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_projects_slug"}
	require.True(t, IsUniqueViolationOn(pgErr, "slug"))
	require.False(t, IsUniqueViolationOn(pgErr, "username"))

	myErr := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'acme' for key 'partners.idx_partners_name'"}
	require.True(t, IsUniqueViolationOn(myErr, "name"))
}
