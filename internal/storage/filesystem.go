package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

var _ ObjectStore = (*FilesystemStore)(nil)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,254}$`)

// FilesystemStore keeps objects as flat files under a root directory and
// exposes them below a public URL prefix.
type FilesystemStore struct {
	root       string
	publicBase string
}

// NewFilesystemStore creates root when missing. publicBase is the URL prefix
// the directory is served under, "/uploads" when empty.
func NewFilesystemStore(root, publicBase string) (*FilesystemStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("filesystem store: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("filesystem store: ensure root directory: %w", err)
	}

	publicBase = strings.TrimRight(strings.TrimSpace(publicBase), "/")
	if publicBase == "" {
		publicBase = "/uploads"
	}
	return &FilesystemStore{root: root, publicBase: publicBase}, nil
}

// Root returns the directory objects are written to.
func (s *FilesystemStore) Root() string {
	return s.root
}

// ValidName reports whether name is a flat, safe object name.
func ValidName(name string) bool {
	return namePattern.MatchString(name) && !strings.Contains(name, "..")
}

// Put writes to a temporary file first so readers never observe partial content.
func (s *FilesystemStore) Put(ctx context.Context, name string, r io.Reader) (Object, error) {
	if !ValidName(name) {
		return Object{}, ErrInvalidName
	}
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}

	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return Object{}, fmt.Errorf("filesystem store: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return Object{}, fmt.Errorf("filesystem store: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return Object{}, fmt.Errorf("filesystem store: close %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return Object{}, fmt.Errorf("filesystem store: chmod %s: %w", name, err)
	}
	if err := os.Rename(tmpName, s.absolute(name)); err != nil {
		return Object{}, fmt.Errorf("filesystem store: commit %s: %w", name, err)
	}

	return s.Stat(ctx, name)
}

func (s *FilesystemStore) Stat(_ context.Context, name string) (Object, error) {
	if !ValidName(name) {
		return Object{}, ErrInvalidName
	}
	info, err := os.Stat(s.absolute(name))
	if errors.Is(err, os.ErrNotExist) {
		return Object{}, ErrObjectNotFound
	}
	if err != nil {
		return Object{}, fmt.Errorf("filesystem store: stat %s: %w", name, err)
	}
	return Object{
		Name:    name,
		Size:    info.Size(),
		URL:     s.URL(name),
		ModTime: info.ModTime(),
	}, nil
}

func (s *FilesystemStore) Delete(_ context.Context, name string) error {
	if !ValidName(name) {
		return ErrInvalidName
	}
	err := os.Remove(s.absolute(name))
	if errors.Is(err, os.ErrNotExist) {
		return ErrObjectNotFound
	}
	if err != nil {
		return fmt.Errorf("filesystem store: delete %s: %w", name, err)
	}
	return nil
}

func (s *FilesystemStore) URL(name string) string {
	return path.Join(s.publicBase, name)
}

// Check confirms the root directory exists and accepts writes.
func (s *FilesystemStore) Check(_ context.Context) error {
	probe, err := os.CreateTemp(s.root, ".probe-*")
	if err != nil {
		return fmt.Errorf("filesystem store: root not writable: %w", err)
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}

func (s *FilesystemStore) absolute(name string) string {
	return filepath.Join(s.root, name)
}
