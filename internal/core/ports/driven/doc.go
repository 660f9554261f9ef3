// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - EmbeddingService: Generates vector embeddings for chunks and queries
//   - LLMService: Rewrites queries and streams answers
//   - VectorIndex: Stores vectors per namespace and answers similarity queries
//   - Loader / LoaderRegistry: Reads a source file into documents
//   - Chunker / ChunkerRegistry: Splits documents by strategy
//   - PromptStore: Policy and instruction texts
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - BlobStore: Archives uploaded files. Without it, uploads are ingested
//     from a temporary file only.
//   - ConfigStore: Persistent configuration. Without it, defaults and the
//     environment are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, loader, or chunker package
package driven
