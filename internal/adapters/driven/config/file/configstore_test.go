package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestDefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".oceanbot"), dir)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.provider", "anthropic"))
	require.NoError(t, store.Set("retrieval.top_k", 6))
	require.NoError(t, store.Set("index.compress", true))
	require.NoError(t, store.Set("server.allowed_origins", []string{"https://ocean48.com"}))

	assert.Equal(t, "anthropic", store.GetString("llm.provider"))
	assert.Equal(t, 6, store.GetInt("retrieval.top_k"))
	assert.True(t, store.GetBool("index.compress"))
	assert.Equal(t, []string{"https://ocean48.com"}, store.GetStringSlice("server.allowed_origins"))

	// Wrong types and missing keys yield zero values.
	assert.Equal(t, "", store.GetString("retrieval.top_k"))
	assert.Equal(t, 0, store.GetInt("llm.provider"))
	assert.False(t, store.GetBool("llm.provider"))
	assert.Nil(t, store.GetStringSlice("missing"))

	val, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Persistence_NestedTables(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("llm.provider", "ollama"))
	require.NoError(t, store1.Set("llm.model", "llama3.2"))
	require.NoError(t, store1.Set("index.dimensions", 768))
	require.NoError(t, store1.Set("embedding.requests_per_second", 2.5))

	raw, err := os.ReadFile(store1.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[llm]")
	assert.Contains(t, string(raw), "[index]")

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "ollama", store2.GetString("llm.provider"))
	assert.Equal(t, "llama3.2", store2.GetString("llm.model"))
	assert.Equal(t, 768, store2.GetInt("index.dimensions"))

	rps, ok := store2.Get("embedding.requests_per_second")
	require.True(t, ok)
	assert.InDelta(t, 2.5, rps, 1e-9)

	assert.Equal(t, []string{
		"embedding.requests_per_second", "index.dimensions", "llm.model", "llm.provider",
	}, store2.Keys())
}

func TestConfigStore_KeyClashKeepsDottedForm(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("blob", "file:///tmp"))
	require.NoError(t, store.Set("blob.base_url", "mem://localhost/x"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "file:///tmp", reloaded.GetString("blob"))
	assert.Equal(t, "mem://localhost/x", reloaded.GetString("blob.base_url"))
}

func TestNestMap(t *testing.T) {
	got := nestMap(map[string]any{
		"a.b":   1,
		"a.c.d": "x",
		"e":     true,
	})
	assert.Equal(t, map[string]any{
		"a": map[string]any{"b": 1, "c": map[string]any{"d": "x"}},
		"e": true,
	}, got)
	assert.Equal(t, map[string]any{"a.b": 1, "a.c.d": "x", "e": true}, flattenMap(got, ""))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.api_key", "sk-test"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyAndCommentOnlyFiles(t *testing.T) {
	for _, content := range []string{"", "# Just a comment\n\n"} {
		tmpDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

		store, err := NewConfigStore(tmpDir)
		require.NoError(t, err)
		assert.Empty(t, store.Keys())
	}
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.model", "gpt-4o-mini"))

	// Replace the file with a directory to cause write error.
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("llm.provider", "openai"))
	_, ok := store.Get("llm.provider")
	assert.False(t, ok, "failed Set is rolled back")
}

func TestConfigStore_SetUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("channel", make(chan int)))
	_, ok := store.Get("channel")
	assert.False(t, ok)
}

func TestConfigStore_GetInt_Variants(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	store.mu.Lock()
	store.data["i64"] = int64(9999)
	store.data["whole"] = 4.0
	store.data["frac"] = 4.5
	store.mu.Unlock()

	assert.Equal(t, 9999, store.GetInt("i64"))
	assert.Equal(t, 4, store.GetInt("whole"))
	assert.Equal(t, 0, store.GetInt("frac"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "worker.key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_, _ = store.Get(key)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 10)
}
