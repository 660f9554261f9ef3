// Package httpapi serves the staff chat, upload and status endpoints.
package httpapi

import (
	"errors"

	"github.com/ocean48/oceanbot/internal/core/ports/driving"
)

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("httpapi: chat service is required")

// ErrMissingUploadService is returned when the upload service is not provided.
var ErrMissingUploadService = errors.New("httpapi: upload service is required")

// Ports aggregates the driving ports the HTTP server calls.
type Ports struct {
	// Chat answers questions over /chat.
	Chat driving.ChatService

	// Upload archives and ingests files posted to /upload.
	Upload driving.UploadService

	// Stats backs /chunking-stats. Optional.
	Stats driving.StatsService

	// Policy backs /verify_system_prompt. Optional.
	Policy driving.PolicyService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Upload == nil {
		return ErrMissingUploadService
	}
	return nil
}
