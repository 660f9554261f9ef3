package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocean48/oceanbot/internal/core/domain"
)

func TestNew(t *testing.T) {
	l := New()
	require.NotNil(t, l)
	assert.Equal(t, domain.FileTypeTXT, l.FileType())
}

func TestLoad_SingleDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handbook.txt")
	content := "Line one\n\nLine two\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	docs, err := New().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, content, docs[0].Content)
	assert.Equal(t, 0, docs[0].Page())
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	docs, err := New().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.True(t, docs[0].IsBlank())
}

func TestLoad_InvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bin.txt")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0xfd}, 0o600))

	_, err := New().Load(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoad_Missing(t *testing.T) {
	_, err := New().Load(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, domain.ErrStorage)
}
