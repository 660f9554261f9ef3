package driven

import "context"

// BlobStore stores uploaded source files.
// Keys are slash-separated paths relative to the store root.
type BlobStore interface {
	// Put writes data under key, replacing any existing object.
	Put(ctx context.Context, key string, data []byte) error

	// Get reads the object under key.
	// Returns a *domain.StorageError wrapping domain.ErrNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
}
