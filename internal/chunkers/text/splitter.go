// Package text provides a recursive character splitter producing fixed-size
// overlapping windows.
package text

import (
	"strings"
	"unicode/utf8"

	"github.com/ocean48/oceanbot/internal/chunkers/stamp"
	"github.com/ocean48/oceanbot/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// DefaultSeparators are tried in order: paragraph, line, word, character.
var DefaultSeparators = []string{"\n\n", "\n", " ", ""}

// Splitter splits text into windows of at most chunkSize characters,
// breaking at the first separator that occurs in an oversized section.
// It implements the driven.Chunker interface.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
	chunkType  domain.ChunkType
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// WithChunkType sets the chunk type stamped on output.
// The general strategy uses ChunkTypeGeneral; the plain-text fallback uses
// ChunkTypeTextSplit.
func WithChunkType(ct domain.ChunkType) Option {
	return func(s *Splitter) {
		s.chunkType = ct
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize:  DefaultChunkSize,
		overlap:    DefaultChunkOverlap,
		separators: DefaultSeparators,
		chunkType:  domain.ChunkTypeGeneral,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// Strategy returns domain.StrategyGeneral.
func (s *Splitter) Strategy() domain.StrategyTag {
	return domain.StrategyGeneral
}

// Chunk splits each document independently.
func (s *Splitter) Chunk(docs []domain.Document, filename string) []domain.Document {
	var out []domain.Document
	for _, doc := range docs {
		out = append(out, stamp.Chunks(doc, filename, s.chunkType, stamp.Texts(s.Split(doc.Content)))...)
	}
	return out
}

// Split returns the windows of text. Whitespace-only windows are dropped.
func (s *Splitter) Split(text string) []string {
	return s.split(text, s.separators)
}

func (s *Splitter) split(text string, separators []string) []string {
	sep := ""
	var rest []string
	for i, c := range separators {
		if c == "" {
			break
		}
		if strings.Contains(text, c) {
			sep = c
			rest = separators[i+1:]
			break
		}
	}

	var (
		out  []string
		good []string
	)
	for _, piece := range splitOn(text, sep) {
		if length(piece) < s.chunkSize {
			good = append(good, piece)
			continue
		}
		if len(good) > 0 {
			out = append(out, s.merge(good, sep)...)
			good = nil
		}
		if len(rest) == 0 {
			if t := strings.TrimSpace(piece); t != "" {
				out = append(out, t)
			}
			continue
		}
		out = append(out, s.split(piece, rest)...)
	}
	if len(good) > 0 {
		out = append(out, s.merge(good, sep)...)
	}
	return out
}

// merge packs small pieces into windows, carrying up to overlap characters
// of trailing pieces into the next window.
func (s *Splitter) merge(pieces []string, sep string) []string {
	sepLen := length(sep)

	var (
		out   []string
		cur   []string
		total int
	)
	joinedLen := func(extra int) int {
		if len(cur) > 0 {
			return total + extra + sepLen
		}
		return total + extra
	}

	for _, p := range pieces {
		l := length(p)
		if joinedLen(l) > s.chunkSize && len(cur) > 0 {
			if doc := strings.TrimSpace(strings.Join(cur, sep)); doc != "" {
				out = append(out, doc)
			}
			for total > s.overlap || (total > 0 && joinedLen(l) > s.chunkSize) {
				total -= length(cur[0])
				if len(cur) > 1 {
					total -= sepLen
				}
				cur = cur[1:]
			}
		}
		if len(cur) > 0 {
			total += sepLen
		}
		cur = append(cur, p)
		total += l
	}
	if doc := strings.TrimSpace(strings.Join(cur, sep)); doc != "" {
		out = append(out, doc)
	}
	return out
}

func splitOn(text, sep string) []string {
	if sep == "" {
		out := make([]string, 0, utf8.RuneCountInString(text))
		for _, r := range text {
			out = append(out, string(r))
		}
		return out
	}
	parts := strings.Split(text, sep)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}
