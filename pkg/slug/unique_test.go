package slug

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func takenSet(values ...string) ExistsFunc {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(_ context.Context, candidate string) (bool, error) {
		_, ok := set[candidate]
		return ok, nil
	}
}

func TestUniqueAppendsSuffixes(t *testing.T) {
	got, err := Unique(context.Background(), "Foo", takenSet("foo", "foo-1", "foo-2"))
	require.NoError(t, err)
	require.Equal(t, "foo-3", got)

	got, err = Unique(context.Background(), "Bar", takenSet("foo"))
	require.NoError(t, err)
	require.Equal(t, "bar", got)
}

func TestUniquePropagatesCheckFailure(t *testing.T) {
	boom := errors.New("database is down")
	failing := func(context.Context, string) (bool, error) { return false, boom }

	_, err := Unique(context.Background(), "Foo", failing)
	require.ErrorIs(t, err, ErrCheckFailed)
	require.ErrorIs(t, err, boom)
}

func TestUniqueRejectsEmptySlug(t *testing.T) {
	_, err := Unique(context.Background(), "?!", takenSet())
	require.ErrorIs(t, err, ErrEmpty)
}

func TestUniqueHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Unique(ctx, "Foo", takenSet())
	require.ErrorIs(t, err, context.Canceled)
}

var errDuplicate = errors.New("duplicate key")

func isDuplicate(err error) bool { return errors.Is(err, errDuplicate) }

func TestAssignRetriesAfterConflict(t *testing.T) {
	var persisted []string
	var collisions []string

	got, err := Assign(context.Background(), "mon-article", AssignOptions{
		Exists: takenSet(),
		Persist: func(_ context.Context, candidate string) error {
			persisted = append(persisted, candidate)
			if candidate == "mon-article" {
				return errDuplicate
			}
			return nil
		},
		IsConflict:  isDuplicate,
		OnCollision: func(candidate, stage string) { collisions = append(collisions, stage+":"+candidate) },
	})

	require.NoError(t, err)
	require.Equal(t, "mon-article-1", got)
	require.Equal(t, []string{"mon-article", "mon-article-1"}, persisted)
	require.Equal(t, []string{"insert:mon-article"}, collisions)
}

func TestAssignSkipsTakenCandidatesBeforePersisting(t *testing.T) {
	var persisted []string

	got, err := Assign(context.Background(), "foo", AssignOptions{
		Exists: takenSet("foo", "foo-1"),
		Persist: func(_ context.Context, candidate string) error {
			persisted = append(persisted, candidate)
			return nil
		},
		IsConflict: isDuplicate,
	})

	require.NoError(t, err)
	require.Equal(t, "foo-2", got)
	require.Equal(t, []string{"foo-2"}, persisted)
}

func TestAssignStopsOnOtherErrors(t *testing.T) {
	boom := errors.New("disk full")

	_, err := Assign(context.Background(), "foo", AssignOptions{
		Exists:     takenSet(),
		Persist:    func(context.Context, string) error { return boom },
		IsConflict: isDuplicate,
	})
	require.ErrorIs(t, err, boom)
}

func TestAssignDoesNotPersistWhenCheckFails(t *testing.T) {
	called := false

	_, err := Assign(context.Background(), "foo", AssignOptions{
		Exists: func(context.Context, string) (bool, error) { return false, errors.New("timeout") },
		Persist: func(context.Context, string) error {
			called = true
			return nil
		},
	})
	require.ErrorIs(t, err, ErrCheckFailed)
	require.False(t, called)
}

func TestAssignGivesUp(t *testing.T) {
	var persisted []string

	_, err := Assign(context.Background(), "foo", AssignOptions{
		Exists: takenSet(),
		Persist: func(_ context.Context, candidate string) error {
			persisted = append(persisted, candidate)
			return errDuplicate
		},
		IsConflict:  isDuplicate,
		MaxAttempts: 3,
	})
	require.ErrorIs(t, err, ErrExhausted)
	require.Equal(t, []string{"foo", "foo-1", "foo-2"}, persisted)
}

func TestCandidate(t *testing.T) {
	require.Equal(t, "foo", Candidate("foo", 0))
	require.Equal(t, "foo-12", Candidate("foo", 12))
}
