package loaders

import (
	"context"
	"sort"
	"sync"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.LoaderRegistry = (*Registry)(nil)

// Registry dispatches to the loader registered for a file type.
type Registry struct {
	mu      sync.RWMutex
	loaders map[domain.FileType]driven.Loader
}

// NewRegistry creates a registry holding the given loaders.
func NewRegistry(loaders ...driven.Loader) *Registry {
	r := &Registry{loaders: make(map[domain.FileType]driven.Loader)}
	for _, l := range loaders {
		r.Register(l)
	}
	return r
}

// Register adds a loader, replacing any loader for the same file type.
func (r *Registry) Register(l driven.Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders[l.FileType()] = l
}

// Load reads path with the loader registered for ext.
func (r *Registry) Load(ctx context.Context, path, ext string) ([]domain.Document, error) {
	ft, err := domain.FileTypeFromExtension(ext)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	l, ok := r.loaders[ft]
	r.mu.RUnlock()
	if !ok {
		return nil, &domain.UnsupportedFormatError{Extension: ext}
	}

	return l.Load(ctx, path)
}

// SupportedTypes returns the registered file types, sorted.
func (r *Registry) SupportedTypes() []domain.FileType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.FileType, 0, len(r.loaders))
	for ft := range r.loaders {
		out = append(out, ft)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
