package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidation indicates a malformed request, rejected before any
	// pipeline stage runs.
	ErrValidation = errors.New("validation failed")

	// ErrUnsupportedFormat indicates a file extension outside pdf, docx, txt and csv.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrStorage indicates a source file is missing or unreadable.
	ErrStorage = errors.New("storage error")

	// ErrIndexProvisioning indicates index creation or the readiness poll
	// failed or timed out.
	ErrIndexProvisioning = errors.New("index provisioning failed")

	// ErrEmbedding indicates an embedding call failed.
	ErrEmbedding = errors.New("embedding failed")

	// ErrModel indicates a language-model call failed.
	ErrModel = errors.New("model call failed")

	// ErrIngestion wraps any failure that aborts an ingestion call.
	ErrIngestion = errors.New("ingestion failed")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Query rewriting and answering are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")
)

// UnsupportedFormatError names the offending extension.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %q", e.Extension)
}

// Is reports whether target is ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// StorageError names the blob key or path that could not be read or written.
type StorageError struct {
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("storage: %s", e.Key)
	}
	return fmt.Sprintf("storage: %s: %v", e.Key, e.Err)
}

// Unwrap exposes both ErrStorage and the underlying cause.
func (e *StorageError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrStorage}
	}
	return []error{ErrStorage, e.Err}
}

// Stage names a step of the ingestion pipeline.
type Stage string

// Ingestion stages in execution order.
const (
	StageStore     Stage = "store"
	StageLoad      Stage = "load"
	StageChunk     Stage = "chunk"
	StageProvision Stage = "provision"
	StageEmbed     Stage = "embed"
	StageUpsert    Stage = "upsert"
)

// StageError is the ingestion failure reported to callers.
// It names the failing stage and wraps the underlying cause.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("ingestion failed at %s: %v", e.Stage, e.Err)
}

// Unwrap exposes both ErrIngestion and the underlying cause.
func (e *StageError) Unwrap() []error {
	return []error{ErrIngestion, e.Err}
}

// StageOf returns the failing stage if err is a StageError.
func StageOf(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
