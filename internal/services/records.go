package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// loadRecord fetches a row by primary key, mapping a miss onto notFound.
func loadRecord[T any](ctx context.Context, db *gorm.DB, id uint, notFound error, scope string) (*T, error) {
	var record T
	err := db.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: load: %w", scope, err)
	}
	return &record, nil
}

// updateRecord applies updates to the row with id and returns the reloaded row.
func updateRecord[T any](ctx context.Context, db *gorm.DB, id uint, updates map[string]any, notFound error, scope string) (*T, error) {
	record, err := loadRecord[T](ctx, db, id, notFound, scope)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return record, nil
	}
	if err := db.WithContext(ctx).Model(record).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("%s: update: %w", scope, err)
	}
	return loadRecord[T](ctx, db, id, notFound, scope)
}

// deleteRecord removes the row with id and returns it.
func deleteRecord[T any](ctx context.Context, db *gorm.DB, id uint, notFound error, scope string) (*T, error) {
	record, err := loadRecord[T](ctx, db, id, notFound, scope)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Delete(record).Error; err != nil {
		return nil, fmt.Errorf("%s: delete: %w", scope, err)
	}
	return record, nil
}

// countRecords counts all rows of T.
func countRecords[T any](ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(new(T)).Count(&count).Error
	return count, err
}
