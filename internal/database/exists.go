package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Exists reports whether table holds a row whose column equals value,
// ignoring the row with id excludeID when it is non-zero.
func Exists(ctx context.Context, db *gorm.DB, table, column string, value any, excludeID uint) (bool, error) {
	if db == nil {
		return false, errors.New("exists: nil database handle")
	}
	if !identifierPattern.MatchString(table) || !identifierPattern.MatchString(column) {
		return false, fmt.Errorf("exists: invalid identifier %q.%q", table, column)
	}

	query := db.WithContext(ctx).
		Table(table).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	if excludeID != 0 {
		query = query.Where(clause.Neq{Column: clause.Column{Name: "id"}, Value: excludeID})
	}

	var count int64
	if err := query.Limit(1).Count(&count).Error; err != nil {
		return false, fmt.Errorf("exists: %s.%s: %w", table, column, err)
	}
	return count > 0, nil
}
