package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocean48/oceanbot/internal/adapters/driven/embedding"
	"github.com/ocean48/oceanbot/internal/core/domain"
)

func TestServices_Close(t *testing.T) {
	t.Run("close with nil services", func(t *testing.T) {
		s := &Services{}
		assert.NotPanics(t, s.Close)
	})
}

func TestCreateEmbeddingService(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.EmbeddingSettings
		wantNil  bool
		wantErr  bool
	}{
		{name: "nil settings returns nil", settings: nil, wantNil: true},
		{name: "unconfigured settings returns nil", settings: &domain.EmbeddingSettings{}, wantNil: true},
		{
			name: "ollama provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOllama,
				BaseURL:  "http://localhost:11434",
				Model:    "nomic-embed-text",
			},
		},
		{
			name: "openai provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "test-key",
				Model:    "text-embedding-3-small",
			},
		},
		{
			name: "eino provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderEino,
				APIKey:   "test-key",
				BaseURL:  "http://localhost:9999/v1",
				Model:    "text-embedding-3-small",
			},
		},
		{
			name: "anthropic is not an embedding provider",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderAnthropic,
				APIKey:   "test-key",
			},
			wantNil: true,
		},
		{
			name: "openai without key is not configured",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(context.Background(), tt.settings, 0)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			defer svc.Close()
			assert.Equal(t, tt.settings.Model, svc.ModelName())
		})
	}
}

func TestCreateEmbeddingService_Dimensions(t *testing.T) {
	settings := &domain.EmbeddingSettings{Provider: domain.AIProviderOllama, Model: "nomic-embed-text"}

	svc, err := CreateEmbeddingService(context.Background(), settings, 0)
	require.NoError(t, err)
	assert.Equal(t, 768, svc.Dimensions())

	svc, err = CreateEmbeddingService(context.Background(), settings, 1024)
	require.NoError(t, err)
	assert.Equal(t, 1024, svc.Dimensions())
}

func TestCreateEmbeddingService_RateLimited(t *testing.T) {
	settings := &domain.EmbeddingSettings{
		Provider:          domain.AIProviderOllama,
		Model:             "nomic-embed-text",
		RequestsPerSecond: 2,
	}

	svc, err := CreateEmbeddingService(context.Background(), settings, 0)
	require.NoError(t, err)
	assert.IsType(t, &embedding.RateLimited{}, svc)

	settings.RequestsPerSecond = 0
	svc, err = CreateEmbeddingService(context.Background(), settings, 0)
	require.NoError(t, err)
	assert.NotEqual(t, "*embedding.RateLimited", typeName(svc))
}

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.LLMSettings
		wantNil  bool
	}{
		{name: "nil settings returns nil", settings: nil, wantNil: true},
		{name: "unconfigured settings returns nil", settings: &domain.LLMSettings{}, wantNil: true},
		{
			name: "ollama provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOllama,
				BaseURL:  "http://localhost:11434",
				Model:    "llama3.2",
			},
		},
		{
			name: "openai provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "test-key",
				Model:    "gpt-4o-mini",
			},
		},
		{
			name: "anthropic provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderAnthropic,
				APIKey:   "test-key",
				Model:    "claude-3-5-sonnet-latest",
			},
		},
		{
			name: "eino provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderEino,
				APIKey:   "test-key",
				Model:    "gpt-4o-mini",
			},
		},
		{
			name:     "unknown provider is not configured",
			settings: &domain.LLMSettings{Provider: "unknown", APIKey: "test-key"},
			wantNil:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(context.Background(), tt.settings)
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			defer svc.Close()
			assert.Equal(t, tt.settings.Model, svc.ModelName())
		})
	}
}

func TestBuild_RecordsWarnings(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Embedding.APIKey = ""
	settings.LLM.APIKey = ""

	svcs := Build(context.Background(), &settings)
	defer svcs.Close()

	assert.Nil(t, svcs.Embedding)
	assert.Nil(t, svcs.LLM)
	assert.Len(t, svcs.Warnings, 2)
}

func TestBuild_Configured(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Embedding.APIKey = "test-key"
	settings.LLM.Provider = domain.AIProviderOllama
	settings.LLM.Model = "llama3.2"

	svcs := Build(context.Background(), &settings)
	defer svcs.Close()

	assert.NotNil(t, svcs.Embedding)
	assert.NotNil(t, svcs.LLM)
	assert.Empty(t, svcs.Warnings)
}

func TestValidateConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			_, _ = w.Write([]byte(`{"models":[]}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	ctx := context.Background()

	t.Run("reachable ollama", func(t *testing.T) {
		assert.NoError(t, ValidateEmbeddingConfig(ctx, &domain.EmbeddingSettings{
			Provider: domain.AIProviderOllama, BaseURL: srv.URL, Model: "nomic-embed-text",
		}, 0))
		assert.NoError(t, ValidateLLMConfig(ctx, &domain.LLMSettings{
			Provider: domain.AIProviderOllama, BaseURL: srv.URL, Model: "llama3.2",
		}))
	})

	t.Run("unconfigured", func(t *testing.T) {
		assert.ErrorIs(t, ValidateEmbeddingConfig(ctx, nil, 0), domain.ErrEmbeddingUnavailable)
		assert.ErrorIs(t, ValidateLLMConfig(ctx, &domain.LLMSettings{}), domain.ErrLLMUnavailable)
	})

	t.Run("unreachable", func(t *testing.T) {
		dead := httptest.NewServer(http.NotFoundHandler())
		dead.Close()

		err := ValidateLLMConfig(ctx, &domain.LLMSettings{
			Provider: domain.AIProviderOllama, BaseURL: dead.URL, Model: "llama3.2",
		})
		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	})
}

func TestChatOptions(t *testing.T) {
	opts := ChatOptions(&domain.LLMSettings{MaxTokens: 512, Temperature: 0.2})
	assert.Equal(t, 512, opts.MaxTokens)
	assert.InDelta(t, 0.2, opts.Temperature, 1e-9)
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
