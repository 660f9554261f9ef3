// Package domain defines the core business entities for OceanBot.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A retrievable unit of text with provenance metadata
//   - StrategyTag: The chunking strategy chosen for a source file
//   - Message: One turn of a staff conversation
//   - IndexSpec: The shape of the vector index the pipeline writes to
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
