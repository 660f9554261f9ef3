package driving

import (
	"context"

	"github.com/ocean48/oceanbot/internal/core/domain"
)

// UploadService archives uploaded files in the blob store and ingests them.
type UploadService interface {
	// Upload stores data under dir/filename and runs the ingestion pipeline
	// on it. filename is reduced to its base name first.
	Upload(ctx context.Context, dir, filename string, data []byte) (*domain.IngestResult, error)

	// IngestBlob fetches a previously archived file and ingests it.
	IngestBlob(ctx context.Context, key string) (*domain.IngestResult, error)
}
