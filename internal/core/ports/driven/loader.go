package driven

import (
	"context"

	"github.com/ocean48/oceanbot/internal/core/domain"
)

// Loader reads one file type into documents with page-level provenance.
// Loaders only set MetaPage or MetaRowIndex; everything else is stamped later.
type Loader interface {
	// FileType returns the file type this loader handles.
	FileType() domain.FileType

	// Load reads the file at path.
	Load(ctx context.Context, path string) ([]domain.Document, error)
}

// LoaderRegistry dispatches to the loader registered for a file type.
type LoaderRegistry interface {
	// Load reads path with the loader for ext.
	// Unknown extensions fail with *domain.UnsupportedFormatError.
	Load(ctx context.Context, path, ext string) ([]domain.Document, error)

	// Register adds a loader, replacing any loader for the same file type.
	Register(loader Loader)

	// SupportedTypes returns the registered file types.
	SupportedTypes() []domain.FileType
}
