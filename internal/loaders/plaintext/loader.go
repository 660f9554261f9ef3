// Package plaintext loads .txt files as a single document.
package plaintext

import (
	"context"
	"unicode/utf8"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
	"github.com/ocean48/oceanbot/internal/loaders"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles plain text files.
type Loader struct{}

// New creates a new plain text loader.
func New() *Loader {
	return &Loader{}
}

// FileType returns domain.FileTypeTXT.
func (l *Loader) FileType() domain.FileType {
	return domain.FileTypeTXT
}

// Load returns exactly one document holding the full file content.
func (l *Loader) Load(ctx context.Context, path string) ([]domain.Document, error) {
	data, err := loaders.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, domain.ErrInvalidInput
	}
	return []domain.Document{domain.NewDocument(string(data))}, nil
}
