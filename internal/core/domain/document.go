package domain

import (
	"strconv"
	"strings"
)

// Metadata keys stamped on documents by loaders and chunkers.
const (
	MetaSource      = "source"
	MetaPage        = "page"
	MetaChunkType   = "chunk_type"
	MetaChunkIndex  = "chunk_index"
	MetaTotalChunks = "total_chunks"
	MetaCategory    = "category"
	MetaRowIndex    = "row_index"
)

// Document is a unit of retrievable text.
// Loaders produce one per page, paragraph group or row; chunkers split
// them further. Documents are never mutated once upserted.
type Document struct {
	// Content is the text payload.
	Content string

	// Metadata holds provenance and structural tags.
	// Values are scalars: string, int, int64, float64 or bool.
	Metadata map[string]any
}

// NewDocument creates a document with an initialised metadata map.
func NewDocument(content string) Document {
	return Document{Content: content, Metadata: make(map[string]any)}
}

// IsBlank reports whether the content is empty or whitespace only.
func (d Document) IsBlank() bool {
	return strings.TrimSpace(d.Content) == ""
}

// Source returns the originating filename, or "" if untagged.
func (d Document) Source() string {
	s, _ := d.Metadata[MetaSource].(string)
	return s
}

// Page returns the 0-based page index, or 0 when unknown.
func (d Document) Page() int {
	return metaInt(d.Metadata, MetaPage)
}

// ChunkType returns the chunk type tag, or "" if the document was never chunked.
func (d Document) ChunkType() ChunkType {
	s, _ := d.Metadata[MetaChunkType].(string)
	return ChunkType(s)
}

// WithMetadata returns a copy of the document with key set to value.
// The receiver's map is not modified.
func (d Document) WithMetadata(key string, value any) Document {
	out := Document{Content: d.Content, Metadata: CopyMetadata(d.Metadata)}
	out.Metadata[key] = value
	return out
}

// CopyMetadata returns a shallow copy of m. A nil map yields an empty map.
func CopyMetadata(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+4)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// MetadataStrings renders scalar metadata values as strings.
// Used by index backends that only store string attributes.
func MetadataStrings(m map[string]any) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case string:
			out[k] = val
		case int:
			out[k] = strconv.Itoa(val)
		case int64:
			out[k] = strconv.FormatInt(val, 10)
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(val)
		}
	}
	return out
}

// MetadataFromStrings is the inverse of MetadataStrings for the known
// integer keys. Unknown keys stay strings.
func MetadataFromStrings(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch k {
		case MetaPage, MetaChunkIndex, MetaTotalChunks, MetaRowIndex:
			if n, err := strconv.Atoi(v); err == nil {
				out[k] = n
				continue
			}
		}
		out[k] = v
	}
	return out
}

func metaInt(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
