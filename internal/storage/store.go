// Package storage persists uploaded media files.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrObjectNotFound is returned when the named object does not exist.
	ErrObjectNotFound = errors.New("storage: object not found")
	// ErrInvalidName rejects names that could escape the storage root.
	ErrInvalidName = errors.New("storage: invalid object name")
)

// Object describes a stored file.
type Object struct {
	Name    string
	Size    int64
	URL     string
	ModTime time.Time
}

// ObjectStore abstracts where uploaded files live.
type ObjectStore interface {
	// Put stores the content of r under name, replacing any existing object.
	Put(ctx context.Context, name string, r io.Reader) (Object, error)
	// Stat returns metadata for name.
	Stat(ctx context.Context, name string) (Object, error)
	// Delete removes name. Missing objects yield ErrObjectNotFound.
	Delete(ctx context.Context, name string) error
	// URL returns the public URL of name.
	URL(name string) string
	// Check verifies the store is usable.
	Check(ctx context.Context) error
}
