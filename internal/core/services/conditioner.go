package services

import (
	"context"
	"fmt"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
	"github.com/ocean48/oceanbot/internal/logger"
)

// QueryConditioner turns a conversation into a search query.
type QueryConditioner struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	opts    driven.ChatOptions
}

// NewQueryConditioner creates a conditioner. prompts may be nil, in which
// case the built-in rewrite instruction is used.
func NewQueryConditioner(llm driven.LLMService, prompts driven.PromptStore, opts driven.ChatOptions) *QueryConditioner {
	return &QueryConditioner{llm: llm, prompts: prompts, opts: opts}
}

// BuildQuery returns the only message verbatim for a one-message
// conversation. Otherwise the model rewrites the conversation into a
// standalone query and its raw output is returned unmodified.
func (c *QueryConditioner) BuildQuery(ctx context.Context, conversation domain.Conversation) (string, error) {
	switch len(conversation) {
	case 0:
		return "", fmt.Errorf("%w: conversation is empty", domain.ErrValidation)
	case 1:
		logger.Debug("Single message, using it verbatim as the query")
		return conversation[0].Content, nil
	}

	if c.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	messages := append(toChatMessages(conversation), driven.ChatMessage{
		Role:    string(domain.RoleUser),
		Content: loadPrompt(c.prompts, driven.PromptQueryRewrite, domain.DefaultQueryRewritePrompt),
	})

	query, err := c.llm.Chat(ctx, messages, c.opts)
	if err != nil {
		return "", fmt.Errorf("%w: rewrite query: %w", domain.ErrModel, err)
	}
	logger.Debug("Rewritten query: %q", query)
	return query, nil
}

func toChatMessages(conversation domain.Conversation) []driven.ChatMessage {
	out := make([]driven.ChatMessage, 0, len(conversation)+1)
	for _, m := range conversation {
		out = append(out, driven.ChatMessage{Role: string(m.Role), Content: m.Content})
	}
	return out
}

// loadPrompt returns the named prompt, or fallback when the store is nil
// or cannot serve it.
func loadPrompt(store driven.PromptStore, name, fallback string) string {
	if store == nil {
		return fallback
	}
	p, err := store.Load(name)
	if err != nil {
		logger.Warn("Prompt %q unavailable, using built-in default: %v", name, err)
		return fallback
	}
	return p
}
