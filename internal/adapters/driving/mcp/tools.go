package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ocean48/oceanbot/internal/core/domain"
)

// HistoryMessage is one earlier turn of the conversation.
type HistoryMessage struct {
	Role    string `json:"role" jsonschema:"user or assistant"`
	Content string `json:"content" jsonschema:"the message text"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string           `json:"question" jsonschema:"the staff question to answer"`
	Prefix   string           `json:"prefix,omitempty" jsonschema:"extra instructions appended to the policy"`
	History  []HistoryMessage `json:"history,omitempty" jsonschema:"earlier turns, oldest first"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	Path    string `json:"path,omitempty" jsonschema:"local path of a .pdf, .docx, .txt or .csv file"`
	BlobKey string `json:"blob_key,omitempty" jsonschema:"key of a previously uploaded file in blob storage"`
}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	Status           string `json:"status"`
	Filename         string `json:"filename"`
	TotalChunks      int    `json:"total_chunks"`
	ChunkingStrategy string `json:"chunking_strategy"`
}

// ClassifyInput is the input schema for the classify tool.
type ClassifyInput struct {
	Filename string `json:"filename" jsonschema:"the file name to classify"`
}

// ClassifyOutput is the output schema for the classify tool.
type ClassifyOutput struct {
	Strategy    string `json:"strategy"`
	ChunkType   string `json:"chunk_type"`
	Description string `json:"description"`
}

// StatsInput is the (empty) input schema for the stats tool.
type StatsInput struct{}

// StatsOutput is the output schema for the stats tool.
type StatsOutput struct {
	TotalVectors int64            `json:"total_vectors"`
	Namespaces   map[string]int64 `json:"namespaces"`
	Dimensions   int              `json:"dimensions"`
	Metric       string           `json:"metric"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.sdk, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a staff question from the indexed restaurant documents",
	}, s.handleAsk)

	if s.ports.Ingestion != nil || s.ports.Upload != nil {
		mcp.AddTool(s.sdk, &mcp.Tool{
			Name:        "ingest",
			Description: "Load, chunk, embed and index a document",
		}, s.handleIngest)
	}

	if s.ports.Classify != nil {
		mcp.AddTool(s.sdk, &mcp.Tool{
			Name:        "classify",
			Description: "Report which chunking strategy a file name selects",
		}, s.handleClassify)
	}

	if s.ports.Stats != nil {
		mcp.AddTool(s.sdk, &mcp.Tool{
			Name:        "stats",
			Description: "Report vector counts per namespace",
		}, s.handleStats)
	}
}

// handleAsk drains the answer stream into a single reply.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if strings.TrimSpace(input.Question) == "" {
		return nil, AskOutput{}, fmt.Errorf("%w: question is required", domain.ErrValidation)
	}

	history := make([]domain.Message, len(input.History))
	for i, m := range input.History {
		history[i] = domain.Message{Role: domain.Role(m.Role), Content: m.Content}
	}

	stream, err := s.ports.Chat.Answer(ctx, input.Prefix, domain.WithUserMessage(history, input.Question))
	if err != nil {
		return nil, AskOutput{}, err
	}
	defer stream.Close()

	var b strings.Builder
	for {
		fragment, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, AskOutput{}, err
		}
		b.WriteString(fragment)
	}

	return nil, AskOutput{Answer: b.String()}, nil
}

// handleIngest ingests a local file or an archived blob.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	var (
		result *domain.IngestResult
		err    error
	)
	switch {
	case input.Path != "" && input.BlobKey != "":
		return nil, IngestOutput{}, fmt.Errorf("%w: give either path or blob_key", domain.ErrValidation)
	case input.Path != "":
		if s.ports.Ingestion == nil {
			return nil, IngestOutput{}, fmt.Errorf("%w: local ingestion is disabled", domain.ErrValidation)
		}
		result, err = s.ports.Ingestion.Ingest(ctx, input.Path, strings.ToLower(filepath.Ext(input.Path)))
	case input.BlobKey != "":
		if s.ports.Upload == nil {
			return nil, IngestOutput{}, fmt.Errorf("%w: blob ingestion is disabled", domain.ErrValidation)
		}
		result, err = s.ports.Upload.IngestBlob(ctx, input.BlobKey)
	default:
		return nil, IngestOutput{}, fmt.Errorf("%w: path or blob_key is required", domain.ErrValidation)
	}
	if err != nil {
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{
		Status:           result.Status,
		Filename:         result.Filename,
		TotalChunks:      result.TotalChunks,
		ChunkingStrategy: string(result.ChunkingStrategy),
	}, nil
}

func (s *Server) handleClassify(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ClassifyInput,
) (*mcp.CallToolResult, ClassifyOutput, error) {
	tag := s.ports.Classify(input.Filename)
	return nil, ClassifyOutput{
		Strategy:    string(tag),
		ChunkType:   string(tag.ChunkType()),
		Description: tag.Description(),
	}, nil
}

func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	stats, err := s.ports.Stats.ChunkingStats(ctx)
	if err != nil {
		return nil, StatsOutput{}, err
	}
	return nil, StatsOutput{
		TotalVectors: stats.Index.TotalVectors,
		Namespaces:   stats.Index.Namespaces,
		Dimensions:   stats.Index.Dimensions,
		Metric:       string(stats.Index.Metric),
	}, nil
}
