package services

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
	"github.com/ocean48/oceanbot/internal/core/ports/driving"
	"github.com/ocean48/oceanbot/internal/logger"
)

// Ensure UploadService implements the interface.
var _ driving.UploadService = (*UploadService)(nil)

// UploadService archives uploads and hands them to the ingestion pipeline
// through a temporary file.
type UploadService struct {
	blobs   driven.BlobStore
	ingest  driving.IngestionService
	tempDir string
}

// NewUploadService creates a new upload service. blobs may be nil, in which
// case uploads are ingested without being archived.
func NewUploadService(blobs driven.BlobStore, ingest driving.IngestionService) *UploadService {
	return &UploadService{blobs: blobs, ingest: ingest}
}

// SanitizeFilename reduces an uploaded filename to its base name. Both
// slash styles are treated as separators.
func SanitizeFilename(name string) (string, error) {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	switch base {
	case "", ".", "..", "/":
		return "", fmt.Errorf("%w: invalid filename %q", domain.ErrValidation, name)
	}
	return base, nil
}

// BlobKey joins an upload directory and filename into a store key.
// The directory cannot climb above the store root.
func BlobKey(dir, filename string) string {
	clean := strings.Trim(path.Clean("/"+strings.ReplaceAll(dir, `\`, "/")), "/")
	if clean == "" {
		return filename
	}
	return clean + "/" + filename
}

// Upload stores data under dir/filename and ingests it. Unsupported
// extensions are rejected before anything is stored.
func (s *UploadService) Upload(
	ctx context.Context, dir, filename string, data []byte,
) (*domain.IngestResult, error) {
	name, err := SanitizeFilename(filename)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(name))
	if _, err := domain.FileTypeFromExtension(ext); err != nil {
		return nil, &domain.StageError{Stage: domain.StageLoad, Err: err}
	}

	if s.blobs != nil {
		key := BlobKey(dir, name)
		if err := s.blobs.Put(ctx, key, data); err != nil {
			return nil, &domain.StageError{Stage: domain.StageStore, Err: err}
		}
		logger.Debug("Archived %d bytes as %s", len(data), key)
	}

	return s.ingestBytes(ctx, name, ext, data)
}

// IngestBlob fetches key from the blob store and ingests it under the
// key's base name.
func (s *UploadService) IngestBlob(ctx context.Context, key string) (*domain.IngestResult, error) {
	if s.blobs == nil {
		return nil, &domain.StageError{
			Stage: domain.StageStore,
			Err:   &domain.StorageError{Key: key, Err: domain.ErrNotFound},
		}
	}

	name, err := SanitizeFilename(key)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(name))
	if _, err := domain.FileTypeFromExtension(ext); err != nil {
		return nil, &domain.StageError{Stage: domain.StageLoad, Err: err}
	}

	data, err := s.blobs.Get(ctx, key)
	if err != nil {
		return nil, &domain.StageError{Stage: domain.StageStore, Err: err}
	}
	return s.ingestBytes(ctx, name, ext, data)
}

// ingestBytes writes data to a temporary file, since loaders read from a
// path, and removes it after ingestion.
func (s *UploadService) ingestBytes(
	ctx context.Context, name, ext string, data []byte,
) (*domain.IngestResult, error) {
	f, err := os.CreateTemp(s.tempDir, "oceanbot-*"+ext)
	if err != nil {
		return nil, &domain.StageError{Stage: domain.StageStore, Err: err}
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return nil, &domain.StageError{Stage: domain.StageStore, Err: &domain.StorageError{Key: tmp, Err: err}}
	}
	if err := f.Close(); err != nil {
		return nil, &domain.StageError{Stage: domain.StageStore, Err: &domain.StorageError{Key: tmp, Err: err}}
	}

	return s.ingest.IngestAs(ctx, tmp, ext, name)
}
