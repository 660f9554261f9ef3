package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ocean48/oceanbot/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for OceanBot resources.
	uriScheme = "oceanbot://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.sdk.AddResource(&mcp.Resource{
		URI:         uriScheme + "strategies",
		Name:        "strategies",
		Description: "Chunking strategies and the file types they apply to",
		MIMEType:    "application/json",
	}, s.handleStrategiesResource)

	if s.ports.Policy != nil {
		s.sdk.AddResource(&mcp.Resource{
			URI:         uriScheme + "policy",
			Name:        "policy",
			Description: "State of the behavioural policy and its reference documents",
			MIMEType:    "application/json",
		}, s.handlePolicyResource)
	}
}

// handleStrategiesResource lists every strategy tag with its description.
func (s *Server) handleStrategiesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type strategyInfo struct {
		Tag         string `json:"tag"`
		ChunkType   string `json:"chunk_type"`
		Description string `json:"description"`
	}

	tags := domain.AllStrategies()
	infos := make([]strategyInfo, len(tags))
	for i, tag := range tags {
		infos[i] = strategyInfo{
			Tag:         string(tag),
			ChunkType:   string(tag.ChunkType()),
			Description: tag.Description(),
		}
	}

	return jsonResource(req.Params.URI, infos)
}

// handlePolicyResource reports the active policy.
func (s *Server) handlePolicyResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	status, err := s.ports.Policy.VerifyPolicy(ctx)
	if err != nil {
		return nil, fmt.Errorf("verifying policy: %w", err)
	}

	return jsonResource(req.Params.URI, map[string]any{
		"system_prompt_active":    status.SystemPromptActive,
		"reality_filter_enforced": status.RealityFilterEnforced,
		"pdf_first_mode":          status.PDFFirstMode,
		"reference_documents":     status.ReferenceDocuments,
		"directive":               status.Directive,
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
