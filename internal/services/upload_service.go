package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/vitrine-studio/vitrine/internal/storage"

	apperrors "github.com/vitrine-studio/vitrine/pkg/errors"
)

// DefaultMaxUploadBytes caps uploads at 50 MiB.
const DefaultMaxUploadBytes int64 = 50 << 20

const sniffLength = 3072

var allowedExtensions = map[string]struct{}{
	".jpeg": {}, ".jpg": {}, ".png": {}, ".gif": {}, ".webp": {},
	".mp4": {}, ".webm": {}, ".ogg": {}, ".mov": {},
}

var allowedMIMETypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"video/mp4",
	"video/webm",
	"video/ogg",
	"audio/ogg",
	"application/ogg",
	"video/quicktime",
}

var ErrUnsupportedMedia = apperrors.NewBadRequest("Only images (jpeg, jpg, png, gif, webp) and videos (mp4, webm, ogg, mov) are allowed")

// UploadedFile describes a stored upload.
type UploadedFile struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	MIMEType     string `json:"mimetype"`
}

// UploadService validates and stores media files.
type UploadService struct {
	store    storage.ObjectStore
	maxBytes int64
}

// NewUploadService constructs an UploadService. A non-positive maxBytes
// selects DefaultMaxUploadBytes.
func NewUploadService(store storage.ObjectStore, maxBytes int64) (*UploadService, error) {
	if store == nil {
		return nil, errors.New("upload service: store is required")
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadService{store: store, maxBytes: maxBytes}, nil
}

// MaxBytes returns the configured upload limit.
func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// Save checks the extension and the sniffed content type of r, then stores
// it under a random name keeping the original extension.
func (s *UploadService) Save(ctx context.Context, originalName string, size int64, r io.Reader) (*UploadedFile, error) {
	ctx = ensureContext(ctx)

	if size > s.maxBytes {
		return nil, tooLarge(s.maxBytes)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, ErrUnsupportedMedia
	}

	head := make([]byte, sniffLength)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("upload service: read file: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return nil, apperrors.NewBadRequest("file is empty")
	}

	detected := mimetype.Detect(head)
	if !allowedMIME(detected) {
		return nil, ErrUnsupportedMedia
	}

	name := uuid.NewString() + ext
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), r), s.maxBytes+1)
	object, err := s.store.Put(ctx, name, body)
	if err != nil {
		return nil, fmt.Errorf("upload service: store file: %w", err)
	}
	if object.Size > s.maxBytes {
		_ = s.store.Delete(ctx, name)
		return nil, tooLarge(s.maxBytes)
	}

	return &UploadedFile{
		URL:          object.URL,
		Filename:     name,
		OriginalName: filepath.Base(originalName),
		Size:         object.Size,
		MIMEType:     detected.String(),
	}, nil
}

// Delete removes a previously uploaded file.
func (s *UploadService) Delete(ctx context.Context, filename string) error {
	err := s.store.Delete(ensureContext(ctx), filename)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrInvalidName):
		return apperrors.NewBadRequest("invalid file name")
	case errors.Is(err, storage.ErrObjectNotFound):
		return ErrFileNotFound
	default:
		return fmt.Errorf("upload service: delete file: %w", err)
	}
}

func allowedMIME(detected *mimetype.MIME) bool {
	for m := detected; m != nil; m = m.Parent() {
		for _, allowed := range allowedMIMETypes {
			if m.Is(allowed) {
				return true
			}
		}
	}
	return false
}

func tooLarge(limit int64) error {
	return apperrors.ErrPayloadTooLarge.WithMessage(fmt.Sprintf("file exceeds the %d MiB limit", limit>>20))
}
