// Package blob provides a BlobStore over viant/afs, so uploads can live on
// local disk (file://), in memory (mem://) or in S3 (s3://).
package blob

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	_ "github.com/viant/afsc/s3" // registers the s3:// scheme

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
	"github.com/ocean48/oceanbot/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.BlobStore = (*Store)(nil)

// Store keeps objects under a base URL.
type Store struct {
	fs   afs.Service
	base string
}

// New creates a store rooted at baseURL. A bare path is treated as file://.
func New(baseURL string) (*Store, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("blob: base URL is required")
	}
	if url.Scheme(baseURL, "") == "" {
		baseURL = url.ToFileURL(baseURL)
	}
	return &Store{fs: afs.New(), base: strings.TrimRight(baseURL, "/")}, nil
}

// BaseURL returns the storage root.
func (s *Store) BaseURL() string {
	return s.base
}

// Put writes data under key, replacing any existing object.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	u, err := s.url(key)
	if err != nil {
		return err
	}
	if err := s.fs.Upload(ctx, u, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return &domain.StorageError{Key: key, Err: err}
	}
	logger.Debug("blob: stored %s (%d bytes)", u, len(data))
	return nil
}

// Get reads the object under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	u, err := s.url(key)
	if err != nil {
		return nil, err
	}
	ok, err := s.fs.Exists(ctx, u)
	if err != nil {
		return nil, &domain.StorageError{Key: key, Err: err}
	}
	if !ok {
		return nil, &domain.StorageError{Key: key, Err: domain.ErrNotFound}
	}
	data, err := s.fs.DownloadWithURL(ctx, u)
	if err != nil {
		return nil, &domain.StorageError{Key: key, Err: err}
	}
	return data, nil
}

// Exists reports whether an object is stored under key.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	u, err := s.url(key)
	if err != nil {
		return false, err
	}
	ok, err := s.fs.Exists(ctx, u)
	if err != nil {
		return false, &domain.StorageError{Key: key, Err: err}
	}
	return ok, nil
}

// url resolves key below the base URL. Keys may not escape the root.
func (s *Store) url(key string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	if clean == "/" || strings.Contains(key, "..") {
		return "", &domain.StorageError{Key: key, Err: domain.ErrInvalidInput}
	}
	return url.Join(s.base, strings.TrimPrefix(clean, "/")), nil
}
