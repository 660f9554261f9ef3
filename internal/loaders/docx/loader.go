// Package docx loads Word documents as paragraph groups.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
	"github.com/ocean48/oceanbot/internal/loaders"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles DOCX documents.
type Loader struct{}

// New creates a new DOCX loader.
func New() *Loader {
	return &Loader{}
}

// FileType returns domain.FileTypeDOCX.
func (l *Loader) FileType() domain.FileType {
	return domain.FileTypeDOCX
}

// Load returns one document per paragraph group. Groups are separated by
// empty paragraphs or section breaks. Page metadata is not available.
func (l *Loader) Load(ctx context.Context, path string) ([]domain.Document, error) {
	data, err := loaders.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	// Open as ZIP archive
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("docx: open %s: %w", path, domain.ErrInvalidInput)
	}

	content, err := readDocumentXML(reader)
	if err != nil {
		return nil, err
	}

	groups, err := parseGroups(content)
	if err != nil {
		return nil, err
	}
	docs := make([]domain.Document, 0, len(groups))
	for _, g := range groups {
		docs = append(docs, domain.NewDocument(g))
	}
	return docs, nil
}

// readDocumentXML returns the raw word/document.xml part.
func readDocumentXML(reader *zip.Reader) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, domain.ErrInvalidInput
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		return content, nil
	}
	return nil, nil
}

// parseGroups walks word/document.xml and groups consecutive non-empty
// paragraphs. Runs nested in hyperlinks, content controls and tables are
// included; each table row becomes one tab-separated line.
func parseGroups(content []byte) ([]string, error) {
	if len(content) == 0 {
		return nil, nil
	}

	var (
		b       groupBuilder
		inText  bool
		runs    int
		sectEnd bool
	)

	dec := xml.NewDecoder(bytes.NewReader(content))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("docx: parse document.xml: %w: %v", domain.ErrInvalidInput, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "r":
				runs++
			case "t":
				inText = runs > 0
			case "tab":
				if runs > 0 {
					b.line.WriteString("\t")
				}
			case "br", "cr":
				if runs > 0 {
					b.line.WriteString("\n")
				}
			case "sectPr":
				sectEnd = true
			case "tr":
				b.rows = append(b.rows, nil)
			case "tc":
				b.cells = append(b.cells, &strings.Builder{})
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "r":
				runs--
			case "t":
				inText = false
			case "p":
				b.endParagraph()
				if sectEnd {
					b.flush()
					sectEnd = false
				}
			case "tc":
				b.endCell()
			case "tr":
				b.endRow()
			}
		case xml.CharData:
			if inText {
				b.line.Write(t)
			}
		}
	}
	b.flush()

	return b.groups, nil
}

// groupBuilder accumulates paragraph lines into groups. Open table rows and
// cells are kept as stacks so nested tables collapse into their parent cell.
type groupBuilder struct {
	groups  []string
	current []string
	line    strings.Builder
	rows    [][]string
	cells   []*strings.Builder
}

func (b *groupBuilder) endParagraph() {
	text := strings.TrimRight(b.line.String(), " \t")
	b.line.Reset()

	if n := len(b.cells); n > 0 {
		appendWord(b.cells[n-1], strings.TrimSpace(text))
		return
	}
	if strings.TrimSpace(text) == "" {
		b.flush()
		return
	}
	b.current = append(b.current, text)
}

func (b *groupBuilder) endCell() {
	n := len(b.cells)
	if n == 0 {
		return
	}
	cell := b.cells[n-1].String()
	b.cells = b.cells[:n-1]
	if r := len(b.rows); r > 0 && cell != "" {
		b.rows[r-1] = append(b.rows[r-1], cell)
	}
}

func (b *groupBuilder) endRow() {
	n := len(b.rows)
	if n == 0 {
		return
	}
	line := strings.Join(b.rows[n-1], "\t")
	b.rows = b.rows[:n-1]
	if line == "" {
		return
	}
	if c := len(b.cells); c > 0 {
		appendWord(b.cells[c-1], line)
		return
	}
	b.current = append(b.current, line)
}

func (b *groupBuilder) flush() {
	if text := strings.TrimSpace(strings.Join(b.current, "\n")); text != "" {
		b.groups = append(b.groups, text)
	}
	b.current = b.current[:0]
}

func appendWord(sb *strings.Builder, s string) {
	if s == "" {
		return
	}
	if sb.Len() > 0 {
		sb.WriteByte(' ')
	}
	sb.WriteString(s)
}
