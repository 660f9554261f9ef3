package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
)

func TestNewPromptStore_WithCustomDir(t *testing.T) {
	dir := t.TempDir()

	store, err := NewPromptStore(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
}

func TestNewPromptStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	store, err := NewPromptStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".oceanbot", "prompts"), store.Dir())
}

func TestPromptStore_Load_CreatesDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptPolicy)
	require.NoError(t, err)

	for _, f := range []string{"policy.txt", "query_rewrite.txt", "enforcement.txt", "answer_template.txt", "README.md"} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, "expected file %s to exist", f)
	}
}

func TestPromptStore_Load_Defaults(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	tests := map[string]string{
		driven.PromptPolicy:         domain.DefaultPolicyPrompt,
		driven.PromptQueryRewrite:   domain.DefaultQueryRewritePrompt,
		driven.PromptEnforcement:    domain.DefaultEnforcementPrompt,
		driven.PromptAnswerTemplate: domain.DefaultAnswerTemplate,
	}
	for name, want := range tests {
		got, err := store.Load(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, "file content is returned verbatim for %s", name)
	}
}

func TestPromptStore_Load_ReturnsCustomContent(t *testing.T) {
	dir := t.TempDir()
	custom := "REALITY FILTER\n  ○ Wine_List.pdf\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "policy.txt"), []byte(custom), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptPolicy)
	require.NoError(t, err)
	assert.Equal(t, custom, prompt)
}

func TestPromptStore_Load_FallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, _ = store.Load(driven.PromptEnforcement)
	require.NoError(t, os.Remove(filepath.Join(dir, "enforcement.txt")))
	store.Reload()

	prompt, err := store.Load(driven.PromptEnforcement)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultEnforcementPrompt, prompt)
}

func TestPromptStore_Load_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("nonexistent_prompt")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "nonexistent_prompt")
}

func TestPromptStore_Load_InitFailureUsesDefaults(t *testing.T) {
	store, err := NewPromptStore("/dev/null/prompts")
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptQueryRewrite)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultQueryRewritePrompt, prompt)
	assert.Error(t, store.Init())
}

func TestPromptStore_CacheAndReload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	first, err := store.Load(driven.PromptPolicy)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "policy.txt"), []byte("edited"), 0600))

	cached, err := store.Load(driven.PromptPolicy)
	require.NoError(t, err)
	assert.Equal(t, first, cached, "cached until Reload")

	store.Reload()
	fresh, err := store.Load(driven.PromptPolicy)
	require.NoError(t, err)
	assert.Equal(t, "edited", fresh)
}

func TestPromptStore_DoesNotOverwriteExistingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "query_rewrite.txt")
	require.NoError(t, os.WriteFile(path, []byte("mine"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Init())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))
}

func TestPromptStore_Load_ConcurrentAccess(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := PromptNames()[i%len(PromptNames())]
			_, err := store.Load(name)
			assert.NoError(t, err)
			if i%5 == 0 {
				store.Reload()
			}
		}(i)
	}
	wg.Wait()
}

func TestPromptWatcher_HandleEvent(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)
	w, err := NewPromptWatcher(store)
	require.NoError(t, err)
	defer w.Close()

	policy := filepath.Join(store.Dir(), "policy.txt")
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write", fsnotify.Event{Name: policy, Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: policy, Op: fsnotify.Create}, true},
		{"remove", fsnotify.Event{Name: policy, Op: fsnotify.Remove}, true},
		{"write and chmod", fsnotify.Event{Name: policy, Op: fsnotify.Write | fsnotify.Chmod}, true},
		{"chmod only", fsnotify.Event{Name: policy, Op: fsnotify.Chmod}, false},
		{"readme", fsnotify.Event{Name: filepath.Join(store.Dir(), "README.md"), Op: fsnotify.Write}, false},
		{"editor swap file", fsnotify.Event{Name: filepath.Join(store.Dir(), ".policy.txt"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.handleEvent(tt.ev))
		})
	}
}

func TestPromptWatcher_ReloadsOnEdit(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	w, err := NewPromptWatcher(store)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	_, err = store.Load(driven.PromptPolicy)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "policy.txt"), []byte("PDF-FIRST only"), 0600))

	assert.Eventually(t, func() bool {
		got, _ := store.Load(driven.PromptPolicy)
		return got == "PDF-FIRST only"
	}, 5*time.Second, 20*time.Millisecond)
}
