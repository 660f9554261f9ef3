// Package stamp attaches provenance and position metadata to chunks.
package stamp

import "github.com/ocean48/oceanbot/internal/core/domain"

// Piece is one chunk body before stamping. Extra metadata (such as a menu
// category) is merged after the standard keys.
type Piece struct {
	Content string
	Extra   map[string]any
}

// Chunks builds one Document per piece, copying src's metadata and then
// setting source, page, chunk_type, chunk_index and total_chunks.
// Indexes are contiguous from 0 and every chunk carries the same total.
func Chunks(src domain.Document, filename string, chunkType domain.ChunkType, pieces []Piece) []domain.Document {
	if len(pieces) == 0 {
		return nil
	}

	page := src.Page()
	out := make([]domain.Document, 0, len(pieces))
	for i, p := range pieces {
		meta := domain.CopyMetadata(src.Metadata)
		meta[domain.MetaSource] = filename
		meta[domain.MetaPage] = page
		meta[domain.MetaChunkType] = string(chunkType)
		meta[domain.MetaChunkIndex] = i
		meta[domain.MetaTotalChunks] = len(pieces)
		for k, v := range p.Extra {
			meta[k] = v
		}
		out = append(out, domain.Document{Content: p.Content, Metadata: meta})
	}
	return out
}

// Texts wraps plain strings as pieces.
func Texts(texts []string) []Piece {
	pieces := make([]Piece, len(texts))
	for i, t := range texts {
		pieces[i] = Piece{Content: t}
	}
	return pieces
}
