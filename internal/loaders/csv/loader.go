// Package csv loads tabular files as one document per row.
package csv

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
	"github.com/ocean48/oceanbot/internal/loaders"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles CSV files. The first row is the header.
type Loader struct{}

// New creates a new CSV loader.
func New() *Loader {
	return &Loader{}
}

// FileType returns domain.FileTypeCSV.
func (l *Loader) FileType() domain.FileType {
	return domain.FileTypeCSV
}

// Load returns one document per data row. Content is a JSON object keyed
// by header in column order; metadata carries the 0-based row_index.
func (l *Loader) Load(ctx context.Context, path string) ([]domain.Document, error) {
	data, err := loaders.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w: %v", domain.ErrInvalidInput, err)
	}

	var docs []domain.Document
	for row := 0; ; row++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row %d: %w: %v", row, domain.ErrInvalidInput, err)
		}

		content, err := rowJSON(header, record)
		if err != nil {
			return nil, fmt.Errorf("csv: encode row %d: %w", row, err)
		}
		doc := domain.NewDocument(content)
		doc.Metadata[domain.MetaRowIndex] = row
		docs = append(docs, doc)
	}
	return docs, nil
}

// rowJSON renders a row as a flat JSON object. Numeric cells become numbers,
// empty cells become null and missing trailing cells are omitted.
func rowJSON(header, record []string) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range header {
		if i >= len(record) {
			break
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalString(strings.TrimSpace(key))
		if err != nil {
			return "", err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(cellJSON(record[i]))
	}
	buf.WriteByte('}')
	return buf.String(), nil
}

func cellJSON(cell string) []byte {
	v := strings.TrimSpace(cell)
	if v == "" {
		return []byte("null")
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return []byte(strconv.FormatInt(n, 10))
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && !strings.ContainsAny(v, "xXpP") {
		if b, err := json.Marshal(f); err == nil {
			return b
		}
	}
	b, err := marshalString(cell)
	if err != nil {
		return []byte("null")
	}
	return b
}

// marshalString encodes s as a JSON string without HTML escaping, so
// "Surf & Turf" stays readable.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
