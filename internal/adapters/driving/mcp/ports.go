package mcp

import (
	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat answers questions.
	Chat driving.ChatService

	// Ingestion runs the pipeline on local files. Optional.
	Ingestion driving.IngestionService

	// Upload ingests archived blobs. Optional.
	Upload driving.UploadService

	// Stats reports index statistics. Optional.
	Stats driving.StatsService

	// Policy reports the active policy. Optional.
	Policy driving.PolicyService

	// Classify picks a chunking strategy for a filename. Optional.
	Classify func(filename string) domain.StrategyTag
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}
