package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocean48/oceanbot/internal/core/domain"
)

const sampleMenu = `Ocean 48 Dinner
Prices subject to change
RAW BAR
Oysters on the half shell, mignonette
Shrimp cocktail
SIDES & SAUCES
Truffle fries
Creamed spinach
DESSERTS
`

func TestSplit_Categories(t *testing.T) {
	sections := Split(sampleMenu)

	require.Len(t, sections, 2)
	assert.Equal(t, "RAW BAR", sections[0].Category)
	assert.Equal(t, "Oysters on the half shell, mignonette\nShrimp cocktail", sections[0].Body)
	assert.Equal(t, "SIDES & SAUCES", sections[1].Category)
	assert.Equal(t, "Truffle fries\nCreamed spinach", sections[1].Body)
}

func TestSplit_PreHeaderContentDropped(t *testing.T) {
	docs := New().Chunk([]domain.Document{domain.NewDocument(sampleMenu)}, "FOOD_MENU_PDF.pdf")

	for _, d := range docs {
		assert.NotContains(t, d.Content, "Ocean 48 Dinner")
		assert.NotContains(t, d.Content, "Prices subject to change")
	}
}

func TestSplit_AccentedHeaders(t *testing.T) {
	sections := Split("RAW BAR\nOysters $4 each\n\nENTRÉES\nNY Strip 16oz $68\nDover Sole $72")

	require.Len(t, sections, 2)
	assert.Equal(t, "RAW BAR", sections[0].Category)
	assert.Equal(t, "Oysters $4 each", sections[0].Body)
	assert.Equal(t, "ENTRÉES", sections[1].Category)
	assert.Equal(t, "NY Strip 16oz $68\nDover Sole $72", sections[1].Body)
}

func TestSplit_NoHeaders(t *testing.T) {
	assert.Empty(t, Split("Oysters\nShrimp cocktail"))
	assert.Empty(t, Split(""))
}

func TestChunk_Metadata(t *testing.T) {
	doc := domain.Document{Content: sampleMenu, Metadata: map[string]any{domain.MetaPage: 1}}

	docs := New().Chunk([]domain.Document{doc}, "FOOD_MENU_PDF.pdf")

	require.Len(t, docs, 2)
	assert.Equal(t, "Category: RAW BAR\nOysters on the half shell, mignonette\nShrimp cocktail", docs[0].Content)
	assert.Equal(t, "RAW BAR", docs[0].Metadata[domain.MetaCategory])
	assert.Equal(t, "SIDES & SAUCES", docs[1].Metadata[domain.MetaCategory])

	for i, d := range docs {
		assert.Equal(t, domain.ChunkTypeMenuItem, d.ChunkType())
		assert.Equal(t, i, d.Metadata[domain.MetaChunkIndex])
		assert.Equal(t, 2, d.Metadata[domain.MetaTotalChunks])
		assert.Equal(t, 1, d.Page())
		assert.Equal(t, "FOOD_MENU_PDF.pdf", d.Source())
	}
}

func TestSplitter_Strategy(t *testing.T) {
	assert.Equal(t, domain.StrategyFoodMenu, New().Strategy())
}
