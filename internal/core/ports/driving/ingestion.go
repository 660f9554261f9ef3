package driving

import (
	"context"

	"github.com/ocean48/oceanbot/internal/core/domain"
)

// IngestionService loads, chunks, embeds and indexes source files.
type IngestionService interface {
	// Ingest runs the pipeline for the file at path. ext selects the loader;
	// the base name of path is recorded as the source filename.
	// Failures are reported as *domain.StageError.
	Ingest(ctx context.Context, path, ext string) (*domain.IngestResult, error)

	// IngestAs is Ingest with an explicit source filename, used when path is a
	// temporary copy of an upload.
	IngestAs(ctx context.Context, path, ext, filename string) (*domain.IngestResult, error)
}
