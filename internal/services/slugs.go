package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vitrine-studio/vitrine/internal/database"
	"github.com/vitrine-studio/vitrine/pkg/metrics"
	"github.com/vitrine-studio/vitrine/pkg/slug"

	apperrors "github.com/vitrine-studio/vitrine/pkg/errors"
)

const slugColumn = "slug"

// slugAllocator assigns unique slugs for one table. The unique index on the
// slug column is the final arbiter: a violation on insert moves on to the
// next suffix instead of failing the request.
//
// Slugs share the /:idOrSlug path segment with numeric ids, so a slug is never
// all digits: a generated one takes the noun as a prefix and an explicit one
// is rejected.
type slugAllocator struct {
	db          *gorm.DB
	table       string
	noun        string
	maxAttempts int
}

func newSlugAllocator(db *gorm.DB, table, noun string) slugAllocator {
	return slugAllocator{db: db, table: table, noun: noun, maxAttempts: slug.DefaultMaxAttempts}
}

func (a slugAllocator) exists(excludeID uint) slug.ExistsFunc {
	return func(ctx context.Context, candidate string) (bool, error) {
		return database.Exists(ctx, a.db, a.table, slugColumn, candidate, excludeID)
	}
}

// assign persists the record with a slug derived from explicit when given,
// otherwise from title. An explicit slug is normalised but never suffixed: a
// taken explicit slug is a conflict. A present but blank explicit slug is
// invalid.
func (a slugAllocator) assign(ctx context.Context, explicit *string, title string, excludeID uint, persist func(context.Context, string) error) (string, error) {
	scope := a.table + " slug"

	if explicit != nil {
		if strings.TrimSpace(*explicit) == "" {
			return "", apperrors.NewValidation("slug must not be empty")
		}
		base := slug.Generate(*explicit, slug.DefaultMaxLength)
		if base == "" {
			return "", apperrors.NewValidation("slug must contain at least one letter or digit")
		}
		if allDigits(base) {
			return "", apperrors.NewValidation("slug must contain at least one letter")
		}

		taken, err := a.exists(excludeID)(ctx, base)
		if err != nil {
			return "", translateSlugError(scope, fmt.Errorf("%w: %w", slug.ErrCheckFailed, err))
		}
		if taken {
			metrics.SlugCollisions.WithLabelValues(a.table, "explicit").Inc()
			return "", apperrors.NewConflict(fmt.Sprintf("slug %q is already in use", base))
		}

		if err := persist(ctx, base); err != nil {
			if database.IsUniqueViolationOn(err, slugColumn) {
				return "", apperrors.NewConflict(fmt.Sprintf("slug %q is already in use", base)).WithInternal(err)
			}
			return "", fmt.Errorf("%s: %w", scope, err)
		}
		return base, nil
	}

	base := slug.Generate(title, slug.DefaultMaxLength)
	if allDigits(base) {
		base = slug.Generate(a.noun+"-"+base, slug.DefaultMaxLength)
	}
	candidate, err := slug.Assign(ctx, base, slug.AssignOptions{
		Exists:      a.exists(excludeID),
		Persist:     persist,
		IsConflict:  func(err error) bool { return database.IsUniqueViolationOn(err, slugColumn) },
		MaxAttempts: a.maxAttempts,
		OnCollision: func(_ string, stage string) {
			metrics.SlugCollisions.WithLabelValues(a.table, stage).Inc()
		},
	})
	if err != nil {
		return "", translateSlugError(scope, err)
	}
	return candidate, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
