// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem under ~/.oceanbot.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: policy and prompt texts, one file per prompt
//   - PromptWatcher: fsnotify-driven PromptStore reload
package file
