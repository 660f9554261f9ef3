package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads the policy and prompt texts from user-editable files.
// Each prompt lives in <dir>/<name>.txt and falls back to the built-in
// default when the file is missing or unreadable.
//
// Files are created lazily on first Load, not in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts are written to disk on first use and served when a file
// cannot be read.
var defaultPrompts = map[string]string{
	driven.PromptPolicy:         domain.DefaultPolicyPrompt,
	driven.PromptQueryRewrite:   domain.DefaultQueryRewritePrompt,
	driven.PromptEnforcement:    domain.DefaultEnforcementPrompt,
	driven.PromptAnswerTemplate: domain.DefaultAnswerTemplate,
}

// PromptNames returns the names of all known prompts.
func PromptNames() []string {
	return []string{
		driven.PromptPolicy,
		driven.PromptQueryRewrite,
		driven.PromptEnforcement,
		driven.PromptAnswerTemplate,
	}
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.oceanbot/prompts/.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(dir, "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt for the given name. File content is returned
// verbatim, so placeholders and trailing newlines survive.
func (s *PromptStore) Load(name string) (string, error) {
	def, known := defaultPrompts[name]
	if !known {
		return "", fmt.Errorf("load prompt %q: %w", name, domain.ErrNotFound)
	}

	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		return def, nil
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	prompt, err := s.loadFromFile(name)
	if err != nil {
		return def, nil
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// Init creates the prompt directory and default files now rather than on
// first Load. The watcher needs the directory to exist.
func (s *PromptStore) Init() error {
	s.initOnce.Do(s.initialise)
	return s.initErr
}

// initialise creates the prompt directory and any missing default files.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

func (s *PromptStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.promptDir, name+".txt"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	content := `# OceanBot Prompts

These files control what the model is told on every answer.

## Files

- ` + "`policy.txt`" + ` - Behavioural policy (reality filter, reference PDFs, triggers)
- ` + "`enforcement.txt`" + ` - Document-only rule restated after the policy
- ` + "`answer_template.txt`" + ` - System prompt frame
- ` + "`query_rewrite.txt`" + ` - Instruction that turns a conversation into a search query

## Placeholders

` + "`answer_template.txt`" + ` must keep ` + "`{policy}`" + ` and ` + "`{context}`" + `.
The other files have no placeholders.

## Reloading

A running server watches this directory and picks up edits immediately.
Delete a file to restore its default on next start.
`
	return os.WriteFile(path, []byte(content), 0600)
}
