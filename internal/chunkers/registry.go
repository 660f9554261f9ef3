package chunkers

import (
	"sync"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
)

// Registry maps strategy tags to chunkers.
// It implements the driven.ChunkerRegistry interface.
type Registry struct {
	mu       sync.RWMutex
	chunkers map[domain.StrategyTag]driven.Chunker
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		chunkers: make(map[domain.StrategyTag]driven.Chunker),
	}
}

// Register adds a chunker, replacing any chunker for the same strategy.
func (r *Registry) Register(c driven.Chunker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chunkers[c.Strategy()] = c
}

// Get returns the chunker for tag. Unknown tags fall back to the general
// strategy; nil is returned only if no general chunker is registered.
func (r *Registry) Get(tag domain.StrategyTag) driven.Chunker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.chunkers[tag]; ok {
		return c
	}
	return r.chunkers[domain.StrategyGeneral]
}

// Has returns true if a chunker is registered for tag.
func (r *Registry) Has(tag domain.StrategyTag) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.chunkers[tag]
	return ok
}

// Strategies returns the registered strategies in classifier priority order.
func (r *Registry) Strategies() []domain.StrategyTag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.StrategyTag, 0, len(r.chunkers))
	for _, tag := range domain.AllStrategies() {
		if _, ok := r.chunkers[tag]; ok {
			out = append(out, tag)
		}
	}
	return out
}

// Compile-time interface check.
var _ driven.ChunkerRegistry = (*Registry)(nil)
