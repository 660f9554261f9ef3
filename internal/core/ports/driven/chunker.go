package driven

import "github.com/ocean48/oceanbot/internal/core/domain"

// Chunker splits documents into retrieval-sized units for one strategy.
// Chunkers are pure: they do no I/O and never return empty chunks.
type Chunker interface {
	// Strategy returns the strategy this chunker implements.
	Strategy() domain.StrategyTag

	// Chunk splits each input document independently and stamps source,
	// page, chunk_type, chunk_index and total_chunks on every output.
	Chunk(docs []domain.Document, filename string) []domain.Document
}

// ChunkerRegistry maps strategy tags to chunkers.
type ChunkerRegistry interface {
	// Get returns the chunker for tag, falling back to the general strategy.
	Get(tag domain.StrategyTag) Chunker

	// Register adds a chunker, replacing any chunker for the same tag.
	Register(chunker Chunker)
}
