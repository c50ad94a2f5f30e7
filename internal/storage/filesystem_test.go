package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilesystemStorePutStatDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFilesystemStore(dir, "")
	require.NoError(t, err)
	ctx := context.Background()

	obj, err := store.Put(ctx, "logo.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.Equal(t, "logo.png", obj.Name)
	require.EqualValues(t, 9, obj.Size)
	require.Equal(t, "/uploads/logo.png", obj.URL)

	data, err := os.ReadFile(filepath.Join(dir, "logo.png"))
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	stat, err := store.Stat(ctx, "logo.png")
	require.NoError(t, err)
	require.Equal(t, obj.Size, stat.Size)

	require.NoError(t, store.Delete(ctx, "logo.png"))
	require.ErrorIs(t, store.Delete(ctx, "logo.png"), ErrObjectNotFound)
	_, err = store.Stat(ctx, "logo.png")
	require.ErrorIs(t, err, ErrObjectNotFound)
}

func TestFilesystemStoreRejectsUnsafeNames(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir(), "/media/")
	require.NoError(t, err)
	ctx := context.Background()

	for _, name := range []string{"../etc/passwd", "a/b.png", ".hidden", "", "x..png"} {
		_, err := store.Put(ctx, name, strings.NewReader("x"))
		require.ErrorIs(t, err, ErrInvalidName, name)
		require.ErrorIs(t, store.Delete(ctx, name), ErrInvalidName, name)
	}
	require.Equal(t, "/media/a.png", store.URL("a.png"))
}

func TestFilesystemStoreRequiresRoot(t *testing.T) {
	_, err := NewFilesystemStore("  ", "")
	require.Error(t, err)
}

func TestFilesystemStoreCheck(t *testing.T) {
	store, err := NewFilesystemStore(filepath.Join(t.TempDir(), "nested", "uploads"), "")
	require.NoError(t, err)
	require.NoError(t, store.Check(context.Background()))
}
