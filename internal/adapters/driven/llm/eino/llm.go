// Package eino adapts eino chat models to the LLM service port.
package eino

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	openaimodel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/ocean48/oceanbot/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultTimeout bounds each model request.
const DefaultTimeout = 120 * time.Second

// Config holds configuration for an OpenAI-compatible eino chat model.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// LLMService wraps an eino model.BaseChatModel.
type LLMService struct {
	chat  model.BaseChatModel
	model string
}

// New wraps an existing chat model.
func New(chat model.BaseChatModel, modelName string) *LLMService {
	return &LLMService{chat: chat, model: modelName}
}

// NewOpenAICompatible builds an eino OpenAI chat model for any host
// speaking the OpenAI chat completions protocol.
func NewOpenAICompatible(ctx context.Context, cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("eino: API key is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	cm, err := openaimodel.NewChatModel(ctx, &openaimodel.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("eino: create chat model: %w", err)
	}
	return New(cm, cfg.Model), nil
}

// Chat conducts a multi-turn conversation and returns the full reply.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	out, err := s.chat.Generate(ctx, toSchema(messages), toOptions(opts)...)
	if err != nil {
		return "", fmt.Errorf("eino: generate: %w", err)
	}
	if out == nil {
		return "", fmt.Errorf("eino: empty reply")
	}
	return out.Content, nil
}

// ChatStream streams the reply as message chunks.
func (s *LLMService) ChatStream(
	ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions,
) (driven.TokenStream, error) {
	sr, err := s.chat.Stream(ctx, toSchema(messages), toOptions(opts)...)
	if err != nil {
		return nil, fmt.Errorf("eino: stream: %w", err)
	}
	return &tokenStream{reader: sr}, nil
}

func toSchema(messages []driven.ChatMessage) []*schema.Message {
	out := make([]*schema.Message, 0, len(messages))
	for _, m := range messages {
		out = append(out, &schema.Message{Role: schema.RoleType(m.Role), Content: m.Content})
	}
	return out
}

func toOptions(opts driven.ChatOptions) []model.Option {
	var out []model.Option
	if opts.MaxTokens > 0 {
		out = append(out, model.WithMaxTokens(opts.MaxTokens))
	}
	if opts.Temperature > 0 {
		out = append(out, model.WithTemperature(float32(opts.Temperature)))
	}
	return out
}

type tokenStream struct {
	reader *schema.StreamReader[*schema.Message]
	once   sync.Once
}

func (t *tokenStream) Recv() (string, error) {
	for {
		chunk, err := t.reader.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", io.EOF
			}
			return "", fmt.Errorf("eino: read stream: %w", err)
		}
		if chunk != nil && chunk.Content != "" {
			return chunk.Content, nil
		}
	}
}

func (t *tokenStream) Close() error {
	t.once.Do(t.reader.Close)
	return nil
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping sends a one-token request. Eino exposes no cheaper health check.
func (s *LLMService) Ping(ctx context.Context) error {
	_, err := s.Chat(ctx, []driven.ChatMessage{{Role: string(schema.User), Content: "ping"}},
		driven.ChatOptions{MaxTokens: 1})
	return err
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}
