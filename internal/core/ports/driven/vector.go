package driven

import (
	"context"

	"github.com/ocean48/oceanbot/internal/core/domain"
)

// VectorIndex provides vector storage and similarity search.
// Index lifecycle (Exists, Create, Describe) is kept apart from Upsert so
// provisioning can be checked independently of writes.
type VectorIndex interface {
	// Exists reports whether the named index has been created.
	Exists(ctx context.Context, name string) (bool, error)

	// Create creates the index. Creating an existing index is an error.
	Create(ctx context.Context, spec domain.IndexSpec) error

	// Describe returns the provisioning status of the index.
	Describe(ctx context.Context, name string) (domain.IndexStatus, error)

	// Upsert adds records to a namespace. It never deletes existing records.
	Upsert(ctx context.Context, namespace string, records []domain.VectorRecord) error

	// Query returns up to k nearest matches, closest first.
	Query(ctx context.Context, namespace string, vector []float32, k int) ([]domain.Match, error)

	// Stats returns index-level statistics.
	Stats(ctx context.Context) (domain.IndexStats, error)

	// Close releases resources.
	Close() error
}
