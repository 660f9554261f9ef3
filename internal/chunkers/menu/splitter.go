// Package menu splits food menus into one chunk per category.
package menu

import (
	"regexp"
	"strings"

	"github.com/ocean48/oceanbot/internal/chunkers/stamp"
	"github.com/ocean48/oceanbot/internal/core/domain"
)

// headerPattern matches a line made only of upper-case words and spaces,
// e.g. "RAW BAR" or "SIDES & SAUCES".
var headerPattern = regexp.MustCompile(`(?m)^[ \t]*(\p{Lu}[\p{Lu}\p{N} &'’/-]*[\p{Lu}\p{N}])[ \t]*$`)

// Section is one category and the menu text under it.
type Section struct {
	Category string
	Body     string
}

// Splitter splits menus at category headers.
// Text before the first header has no category and is dropped.
// It implements the driven.Chunker interface.
type Splitter struct{}

// New creates a menu splitter.
func New() *Splitter {
	return &Splitter{}
}

// Strategy returns domain.StrategyFoodMenu.
func (s *Splitter) Strategy() domain.StrategyTag {
	return domain.StrategyFoodMenu
}

// Chunk emits one menu_item chunk per non-empty category body, prefixed
// with "Category: <name>".
func (s *Splitter) Chunk(docs []domain.Document, filename string) []domain.Document {
	var out []domain.Document
	for _, doc := range docs {
		sections := Split(doc.Content)
		pieces := make([]stamp.Piece, 0, len(sections))
		for _, sec := range sections {
			pieces = append(pieces, stamp.Piece{
				Content: "Category: " + sec.Category + "\n" + sec.Body,
				Extra:   map[string]any{domain.MetaCategory: sec.Category},
			})
		}
		out = append(out, stamp.Chunks(doc, filename, domain.ChunkTypeMenuItem, pieces)...)
	}
	return out
}

// Split returns the categories of text in order. Sections with an empty
// body are skipped.
func Split(text string) []Section {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	locs := headerPattern.FindAllStringSubmatchIndex(text, -1)

	sections := make([]Section, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := strings.TrimSpace(text[loc[1]:end])
		if body == "" {
			continue
		}
		sections = append(sections, Section{
			Category: strings.TrimSpace(text[loc[2]:loc[3]]),
			Body:     body,
		})
	}
	return sections
}
