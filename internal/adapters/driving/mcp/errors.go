// Package mcp provides an MCP (Model Context Protocol) server adapter for OceanBot.
// It lets agent clients ask questions and ingest documents as tools.
package mcp

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("mcp: chat service is required")
