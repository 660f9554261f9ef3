// Package eino adapts eino embedders to the embedding service port.
package eino

import (
	"context"
	"fmt"
	"time"

	openaiembed "github.com/cloudwego/eino-ext/components/embedding/openai"
	"github.com/cloudwego/eino/components/embedding"

	"github.com/ocean48/oceanbot/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// DefaultTimeout bounds each embedding request.
const DefaultTimeout = 60 * time.Second

// Config holds configuration for an OpenAI-compatible eino embedder.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Dimensions int
	Timeout    time.Duration
}

// EmbeddingService wraps an eino embedding.Embedder.
type EmbeddingService struct {
	embedder   embedding.Embedder
	model      string
	dimensions int
}

// New wraps an existing embedder.
func New(embedder embedding.Embedder, model string, dimensions int) *EmbeddingService {
	return &EmbeddingService{embedder: embedder, model: model, dimensions: dimensions}
}

// NewOpenAICompatible builds an eino OpenAI embedder for any host speaking
// the OpenAI embeddings protocol.
func NewOpenAICompatible(ctx context.Context, cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("eino: API key is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	ec := &openaiembed.EmbeddingConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	}
	if cfg.Dimensions > 0 {
		dims := cfg.Dimensions
		ec.Dimensions = &dims
	}

	e, err := openaiembed.NewEmbedder(ctx, ec)
	if err != nil {
		return nil, fmt.Errorf("eino: create embedder: %w", err)
	}
	return New(e, cfg.Model, cfg.Dimensions), nil
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds texts in one call, narrowing eino's float64 output.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	raw, err := s.embedder.EmbedStrings(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("eino: embed: %w", err)
	}
	if len(raw) != len(texts) {
		return nil, fmt.Errorf("eino: got %d embeddings for %d inputs", len(raw), len(texts))
	}

	out := make([][]float32, len(raw))
	for i, v := range raw {
		vec := make([]float32, len(v))
		for j, x := range v {
			vec[j] = float32(x)
		}
		out[i] = vec
	}
	return out, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping embeds a short probe string. Eino exposes no cheaper health check.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	_, err := s.Embed(ctx, "ping")
	return err
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}
