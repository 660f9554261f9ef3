package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
	"github.com/ocean48/oceanbot/internal/core/ports/driving"
	"github.com/ocean48/oceanbot/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.ChatService = (*AnswerService)(nil)

// AnswerOptions configures retrieval and generation.
type AnswerOptions struct {
	// Namespace is the index partition searched.
	Namespace string

	// TopK is the number of passages retrieved per question.
	TopK int

	// Chat configures the answering model.
	Chat driven.ChatOptions
}

// AnswerService streams grounded answers to staff questions.
type AnswerService struct {
	conditioner *QueryConditioner
	embedder    driven.EmbeddingService
	index       driven.VectorIndex
	llm         driven.LLMService
	prompts     driven.PromptStore
	opts        AnswerOptions
}

// NewAnswerService creates a new answer service. prompts may be nil.
func NewAnswerService(
	conditioner *QueryConditioner,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	llm driven.LLMService,
	prompts driven.PromptStore,
	opts AnswerOptions,
) *AnswerService {
	if opts.Namespace == "" {
		opts.Namespace = domain.DefaultNamespace
	}
	if opts.TopK <= 0 {
		opts.TopK = domain.DefaultTopK
	}
	return &AnswerService{
		conditioner: conditioner,
		embedder:    embedder,
		index:       index,
		llm:         llm,
		prompts:     prompts,
		opts:        opts,
	}
}

// Answer builds a search query from the conversation, retrieves the
// nearest passages and streams the model's answer. Errors before the first
// fragment are returned directly; later ones surface through Recv.
func (s *AnswerService) Answer(
	ctx context.Context, prefix string, conversation domain.Conversation,
) (driving.AnswerStream, error) {
	logger.Section("Answer")

	if err := conversation.Validate(); err != nil {
		return nil, err
	}
	switch {
	case s.embedder == nil:
		return nil, domain.ErrEmbeddingUnavailable
	case s.index == nil:
		return nil, domain.ErrVectorIndexUnavailable
	case s.llm == nil:
		return nil, domain.ErrLLMUnavailable
	}

	query, err := s.conditioner.BuildQuery(ctx, conversation)
	if err != nil {
		return nil, err
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %w", domain.ErrEmbedding, err)
	}

	matches, err := s.index.Query(ctx, s.opts.Namespace, vector, s.opts.TopK)
	if err != nil {
		return nil, err
	}
	logger.Debug("Retrieved %d passage(s) for %q", len(matches), query)

	messages := make([]driven.ChatMessage, 0, len(conversation)+1)
	messages = append(messages, driven.ChatMessage{
		Role:    string(domain.RoleSystem),
		Content: s.SystemPrompt(prefix, matches),
	})
	messages = append(messages, toChatMessages(conversation)...)

	stream, err := s.llm.ChatStream(ctx, messages, s.opts.Chat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrModel, err)
	}
	return &answerStream{inner: stream}, nil
}

// SystemPrompt renders the answer template: the policy block is the policy
// preamble, the caller's prefix and the enforcement suffix, and the context
// block holds the retrieved passages.
func (s *AnswerService) SystemPrompt(prefix string, matches []domain.Match) string {
	policy := loadPrompt(s.prompts, driven.PromptPolicy, domain.DefaultPolicyPrompt)
	enforcement := loadPrompt(s.prompts, driven.PromptEnforcement, domain.DefaultEnforcementPrompt)
	template := loadPrompt(s.prompts, driven.PromptAnswerTemplate, domain.DefaultAnswerTemplate)

	passages := make([]string, len(matches))
	for i, m := range matches {
		passages[i] = m.Document.Content
	}

	return strings.NewReplacer(
		domain.PolicyPlaceholder, policy+"\n\n"+prefix+"\n\n"+enforcement,
		domain.ContextPlaceholder, strings.Join(passages, "\n\n"),
	).Replace(template)
}

// answerStream tags model failures mid-stream with domain.ErrModel.
type answerStream struct {
	inner driven.TokenStream
}

func (a *answerStream) Recv() (string, error) {
	frag, err := a.inner.Recv()
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: %w", domain.ErrModel, err)
	}
	return frag, err
}

func (a *answerStream) Close() error {
	return a.inner.Close()
}
