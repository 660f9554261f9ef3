// Package entry provides the line-accumulator splitter shared by the wine,
// allergen and spirits strategies.
//
// A line that matches any boundary pattern starts a new entry. Lines that do
// not are appended to the current entry, so a named item stays together with
// the description lines that follow it.
package entry

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ocean48/oceanbot/internal/chunkers/stamp"
	"github.com/ocean48/oceanbot/internal/core/domain"
)

// Splitter splits documents into entries at boundary lines.
// It implements the driven.Chunker interface.
type Splitter struct {
	strategy  domain.StrategyTag
	patterns  []*regexp.Regexp
	minLength int
}

// Option configures a splitter.
type Option func(*Splitter)

// WithMinLength overrides the minimum entry length in characters.
func WithMinLength(n int) Option {
	return func(s *Splitter) {
		if n >= 0 {
			s.minLength = n
		}
	}
}

// New creates a splitter. Patterns are tested against each line with
// leading whitespace removed and should be anchored with ^.
func New(strategy domain.StrategyTag, patterns []*regexp.Regexp, minLength int, opts ...Option) *Splitter {
	s := &Splitter{
		strategy:  strategy,
		patterns:  patterns,
		minLength: minLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Strategy returns the strategy this splitter implements.
func (s *Splitter) Strategy() domain.StrategyTag {
	return s.strategy
}

// MinLength returns the minimum entry length in characters.
func (s *Splitter) MinLength() int {
	return s.minLength
}

// Chunk splits each document independently.
func (s *Splitter) Chunk(docs []domain.Document, filename string) []domain.Document {
	var out []domain.Document
	for _, doc := range docs {
		entries := s.Split(doc.Content)
		out = append(out, stamp.Chunks(doc, filename, s.strategy.ChunkType(), stamp.Texts(entries))...)
	}
	return out
}

// Split returns the entries of text that meet the minimum length.
func (s *Splitter) Split(text string) []string {
	var (
		entries []string
		acc     []string
	)

	flush := func() {
		entry := strings.TrimSpace(strings.Join(acc, "\n"))
		acc = acc[:0]
		if entry == "" || utf8.RuneCountInString(entry) < s.minLength {
			return
		}
		entries = append(entries, entry)
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if s.IsBoundary(line) && hasText(acc) {
			flush()
		}
		acc = append(acc, line)
	}
	flush()

	return entries
}

// IsBoundary reports whether line starts a new entry.
func (s *Splitter) IsBoundary(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, p := range s.patterns {
		if p.MatchString(trimmed) {
			return true
		}
	}
	return false
}

func hasText(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}
