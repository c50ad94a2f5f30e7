package slug

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrEmpty reports a title that produced no usable slug.
	ErrEmpty = errors.New("slug: title does not produce a usable slug")
	// ErrCheckFailed wraps failures of the existence predicate.
	ErrCheckFailed = errors.New("slug: uniqueness check failed")
	// ErrExhausted is returned when every persist attempt hit a unique conflict.
	ErrExhausted = errors.New("slug: gave up after repeated conflicts")
)

// DefaultMaxAttempts bounds how many times Assign retries after a unique
// constraint violation.
const DefaultMaxAttempts = 5

// ExistsFunc reports whether candidate is already taken.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// Candidate returns base for n == 0 and base-n otherwise.
func Candidate(base string, n int) string {
	if n <= 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}

// Unique generates the slug for title and appends -1, -2, ... until exists
// reports the candidate as free.
func Unique(ctx context.Context, title string, exists ExistsFunc) (string, error) {
	candidate, _, err := resolve(ctx, Generate(title, DefaultMaxLength), 0, exists, nil)
	return candidate, err
}

// Resolve is Unique for an already generated base slug.
func Resolve(ctx context.Context, base string, exists ExistsFunc) (string, error) {
	candidate, _, err := resolve(ctx, base, 0, exists, nil)
	return candidate, err
}

// AssignOptions configures Assign.
type AssignOptions struct {
	// Exists is consulted before every persist attempt.
	Exists ExistsFunc
	// Persist writes the entity with the given slug.
	Persist func(ctx context.Context, candidate string) error
	// IsConflict reports whether a Persist error is a unique violation on the slug.
	IsConflict func(error) bool
	// MaxAttempts bounds Persist calls. Defaults to DefaultMaxAttempts.
	MaxAttempts int
	// OnCollision is notified for every rejected candidate. stage is
	// "check" for a pre-check hit and "insert" for a constraint violation.
	OnCollision func(candidate, stage string)
}

// Assign picks the first free candidate derived from base and persists it.
// When Persist fails with a unique violation the search resumes with the next
// suffix, so concurrent writers racing for the same slug both succeed with
// distinct values. Nothing is persisted when the existence check fails.
func Assign(ctx context.Context, base string, opts AssignOptions) (string, error) {
	if opts.Persist == nil {
		return "", errors.New("slug: persist function is required")
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	next := 0
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate, n, err := resolve(ctx, base, next, opts.Exists, opts.OnCollision)
		if err != nil {
			return "", err
		}

		err = opts.Persist(ctx, candidate)
		if err == nil {
			return candidate, nil
		}
		if opts.IsConflict == nil || !opts.IsConflict(err) {
			return "", err
		}
		if opts.OnCollision != nil {
			opts.OnCollision(candidate, "insert")
		}
		next = n + 1
	}

	return "", fmt.Errorf("%w: %q after %d attempts", ErrExhausted, base, maxAttempts)
}

func resolve(ctx context.Context, base string, start int, exists ExistsFunc, onCollision func(string, string)) (string, int, error) {
	if base == "" {
		return "", 0, ErrEmpty
	}
	if exists == nil {
		return Candidate(base, start), start, nil
	}

	for n := start; ; n++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}

		candidate := Candidate(base, n)
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", 0, fmt.Errorf("%w: %w", ErrCheckFailed, err)
		}
		if !taken {
			return candidate, n, nil
		}
		if onCollision != nil {
			onCollision(candidate, "check")
		}
	}
}
