package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDocument_Accessors tests the metadata accessors
func TestDocument_Accessors(t *testing.T) {
	doc := Document{
		Content: "Joseph Drouhin Chablis 2018 $210",
		Metadata: map[string]any{
			MetaSource:    "RSV_Wine 7_9_20.pdf",
			MetaPage:      3,
			MetaChunkType: string(ChunkTypeWineEntry),
		},
	}

	assert.Equal(t, "RSV_Wine 7_9_20.pdf", doc.Source())
	assert.Equal(t, 3, doc.Page())
	assert.Equal(t, ChunkTypeWineEntry, doc.ChunkType())
	assert.False(t, doc.IsBlank())
}

// TestDocument_PageDefaultsToZero tests unknown pages
func TestDocument_PageDefaultsToZero(t *testing.T) {
	assert.Equal(t, 0, NewDocument("x").Page())
	assert.Equal(t, 0, Document{Content: "x"}.Page())
	assert.Equal(t, 0, Document{Metadata: map[string]any{MetaPage: "n/a"}}.Page())
	assert.Equal(t, 7, Document{Metadata: map[string]any{MetaPage: float64(7)}}.Page())
	assert.Equal(t, 2, Document{Metadata: map[string]any{MetaPage: "2"}}.Page())
}

// TestDocument_IsBlank tests whitespace detection
func TestDocument_IsBlank(t *testing.T) {
	assert.True(t, NewDocument("").IsBlank())
	assert.True(t, NewDocument(" \n\t ").IsBlank())
	assert.False(t, NewDocument(" a ").IsBlank())
}

// TestDocument_WithMetadata tests that the original map is untouched
func TestDocument_WithMetadata(t *testing.T) {
	orig := Document{Content: "c", Metadata: map[string]any{MetaSource: "a.pdf"}}
	updated := orig.WithMetadata(MetaPage, 1)

	assert.Equal(t, 1, updated.Metadata[MetaPage])
	assert.Equal(t, "a.pdf", updated.Metadata[MetaSource])
	_, ok := orig.Metadata[MetaPage]
	assert.False(t, ok)
}

// TestMetadataStrings_RoundTrip tests the string rendering used by index backends
func TestMetadataStrings_RoundTrip(t *testing.T) {
	in := map[string]any{
		MetaSource:      "menu.pdf",
		MetaPage:        0,
		MetaChunkIndex:  int64(4),
		MetaTotalChunks: 9,
		MetaCategory:    "APPETIZERS",
	}

	s := MetadataStrings(in)
	assert.Equal(t, "4", s[MetaChunkIndex])
	assert.Equal(t, "0", s[MetaPage])

	back := MetadataFromStrings(s)
	require.Len(t, back, len(in))
	assert.Equal(t, 4, back[MetaChunkIndex])
	assert.Equal(t, 9, back[MetaTotalChunks])
	assert.Equal(t, "APPETIZERS", back[MetaCategory])
}

// TestCopyMetadata_Nil tests copying a nil map
func TestCopyMetadata_Nil(t *testing.T) {
	m := CopyMetadata(nil)
	require.NotNil(t, m)
	assert.Empty(t, m)
}
