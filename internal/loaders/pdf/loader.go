// Package pdf loads PDF files as one document per page.
package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
	"github.com/ocean48/oceanbot/internal/loaders"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles PDF documents.
type Loader struct{}

// New creates a new PDF loader.
func New() *Loader {
	return &Loader{}
}

// FileType returns domain.FileTypePDF.
func (l *Loader) FileType() domain.FileType {
	return domain.FileTypePDF
}

// Load returns one document per page with the 0-based page index in
// metadata. Pages without extractable text yield empty documents, which
// the chunkers drop.
func (l *Loader) Load(ctx context.Context, path string) ([]domain.Document, error) {
	data, err := loaders.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("pdf: open %s: %w: %v", path, domain.ErrInvalidInput, err)
	}

	n := r.NumPage()
	docs := make([]domain.Document, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc := domain.NewDocument(pageText(r.Page(i)))
		doc.Metadata[domain.MetaPage] = i - 1
		docs = append(docs, doc)
	}
	return docs, nil
}

// pageText extracts the plain text of a page. Malformed content streams
// yield "" rather than failing the whole document.
func pageText(p pdf.Page) (text string) {
	if p.V.IsNull() {
		return ""
	}
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	text, err := p.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}
