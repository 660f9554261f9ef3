// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/ocean48/oceanbot/internal/adapters/driven/embedding"
	einoembed "github.com/ocean48/oceanbot/internal/adapters/driven/embedding/eino"
	ollamaembed "github.com/ocean48/oceanbot/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/ocean48/oceanbot/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/ocean48/oceanbot/internal/adapters/driven/llm/anthropic"
	einollm "github.com/ocean48/oceanbot/internal/adapters/driven/llm/eino"
	ollamallm "github.com/ocean48/oceanbot/internal/adapters/driven/llm/ollama"
	openaillm "github.com/ocean48/oceanbot/internal/adapters/driven/llm/openai"
	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
	"github.com/ocean48/oceanbot/internal/logger"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// Services holds the AI adapters built from settings.
// Either field may be nil when its provider is not configured.
type Services struct {
	Embedding driven.EmbeddingService
	LLM       driven.LLMService
	Warnings  []string // Non-fatal issues; the affected service is left nil.
}

// Close releases all resources held by Services.
func (s *Services) Close() {
	if s.Embedding != nil {
		s.Embedding.Close()
	}
	if s.LLM != nil {
		s.LLM.Close()
	}
}

// Build creates both services from settings. Construction failures are
// recorded as warnings so that the server can still start and report the
// matching Unavailable error per request. Connectivity is not checked.
func Build(ctx context.Context, settings *domain.Settings) *Services {
	out := &Services{}

	emb, err := CreateEmbeddingService(ctx, &settings.Embedding, settings.Index.Dimensions)
	switch {
	case err != nil:
		out.Warnings = append(out.Warnings, fmt.Sprintf("embedding: %v", err))
	case emb == nil:
		out.Warnings = append(out.Warnings, "embedding: provider not configured")
	default:
		out.Embedding = emb
	}

	llm, err := CreateLLMService(ctx, &settings.LLM)
	switch {
	case err != nil:
		out.Warnings = append(out.Warnings, fmt.Sprintf("llm: %v", err))
	case llm == nil:
		out.Warnings = append(out.Warnings, "llm: provider not configured")
	default:
		out.LLM = llm
	}

	for _, w := range out.Warnings {
		logger.Warn("%s", w)
	}
	return out
}

// ValidateEmbeddingConfig creates an embedding service and pings it.
// Used by "config check" to verify credentials.
func ValidateEmbeddingConfig(ctx context.Context, settings *domain.EmbeddingSettings, dims int) error {
	if settings == nil || !settings.IsConfigured() {
		return domain.ErrEmbeddingUnavailable
	}

	svc, err := CreateEmbeddingService(ctx, settings, dims)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: service unreachable (%w)", domain.ErrEmbeddingUnavailable, err)
	}
	return nil
}

// ValidateLLMConfig creates an LLM service and pings it.
func ValidateLLMConfig(ctx context.Context, settings *domain.LLMSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return domain.ErrLLMUnavailable
	}

	svc, err := CreateLLMService(ctx, settings)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: service unreachable (%w)", domain.ErrLLMUnavailable, err)
	}
	return nil
}

// CreateEmbeddingService creates the embedding service selected by settings,
// paced by settings.RequestsPerSecond. dims is the index width; zero falls
// back to the model's known width. Returns nil if the provider is not configured.
func CreateEmbeddingService(
	ctx context.Context, settings *domain.EmbeddingSettings, dims int,
) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}
	if dims == 0 {
		dims = domain.EmbeddingDimensions()[settings.Model]
	}

	var (
		svc driven.EmbeddingService
		err error
	)
	switch settings.Provider {
	case domain.AIProviderOllama:
		svc = ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: dims,
		})

	case domain.AIProviderOpenAI:
		svc, err = openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: dims,
		})

	case domain.AIProviderEino:
		svc, err = einoembed.NewOpenAICompatible(ctx, einoembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: dims,
		})

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("embedding: %s model=%s dims=%d", settings.Provider, svc.ModelName(), svc.Dimensions())
	return embedding.NewRateLimited(svc, settings.RequestsPerSecond), nil
}

// CreateLLMService creates the LLM service selected by settings.
// Returns nil if the provider is not configured.
func CreateLLMService(ctx context.Context, settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	var (
		svc driven.LLMService
		err error
	)
	switch settings.Provider {
	case domain.AIProviderOllama:
		svc = ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderOpenAI:
		svc, err = openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		svc, err = anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderEino:
		svc, err = einollm.NewOpenAICompatible(ctx, einollm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("llm: %s model=%s", settings.Provider, svc.ModelName())
	return svc, nil
}

// ChatOptions returns the generation options configured for answers.
func ChatOptions(settings *domain.LLMSettings) driven.ChatOptions {
	return driven.ChatOptions{
		MaxTokens:   settings.MaxTokens,
		Temperature: settings.Temperature,
	}
}
