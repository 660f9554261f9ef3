package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
)

func TestBuildQuery_SingleMessageVerbatim(t *testing.T) {
	llm := &fakeLLM{reply: "should not be used"}
	c := NewQueryConditioner(llm, nil, driven.ChatOptions{})

	conv := domain.Conversation{{Role: domain.RoleUser, Content: "  Is the sea bass gluten free?  "}}
	got, err := c.BuildQuery(context.Background(), conv)

	require.NoError(t, err)
	assert.Equal(t, "  Is the sea bass gluten free?  ", got)
	assert.Zero(t, llm.chatCalls)
}

func TestBuildQuery_SingleMessageWithoutModel(t *testing.T) {
	c := NewQueryConditioner(nil, nil, driven.ChatOptions{})

	got, err := c.BuildQuery(context.Background(), domain.Conversation{{Role: domain.RoleUser, Content: "Krug?"}})
	require.NoError(t, err)
	assert.Equal(t, "Krug?", got)
}

func TestBuildQuery_RewritesFollowUp(t *testing.T) {
	llm := &fakeLLM{reply: " Louis Jadot Meursault price \n"}
	c := NewQueryConditioner(llm, nil, driven.ChatOptions{})

	conv := domain.Conversation{
		{Role: domain.RoleUser, Content: "Which white burgundies do we pour?"},
		{Role: domain.RoleAssistant, Content: "Chablis and Meursault."},
		{Role: domain.RoleUser, Content: "How much is the second one?"},
	}
	got, err := c.BuildQuery(context.Background(), conv)
	require.NoError(t, err)

	assert.Equal(t, " Louis Jadot Meursault price \n", got, "model output is returned unmodified")
	require.Len(t, llm.chatMessages, 4)
	assert.Equal(t, "assistant", llm.chatMessages[1].Role)
	assert.Equal(t, "user", llm.chatMessages[3].Role)
	assert.Equal(t, domain.DefaultQueryRewritePrompt, llm.chatMessages[3].Content)
}

func TestBuildQuery_PromptOverride(t *testing.T) {
	llm := &fakeLLM{reply: "q"}
	prompts := fakePrompts{driven.PromptQueryRewrite: "Rewrite as a search query."}
	c := NewQueryConditioner(llm, prompts, driven.ChatOptions{})

	conv := domain.WithUserMessage([]domain.Message{{Role: domain.RoleUser, Content: "hi"}}, "and the wine?")
	_, err := c.BuildQuery(context.Background(), conv)
	require.NoError(t, err)

	assert.Equal(t, "Rewrite as a search query.", llm.chatMessages[len(llm.chatMessages)-1].Content)
}

func TestBuildQuery_Errors(t *testing.T) {
	twoTurns := domain.Conversation{
		{Role: domain.RoleUser, Content: "a"},
		{Role: domain.RoleUser, Content: "b"},
	}

	t.Run("empty conversation", func(t *testing.T) {
		_, err := NewQueryConditioner(&fakeLLM{}, nil, driven.ChatOptions{}).BuildQuery(context.Background(), nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("no model", func(t *testing.T) {
		_, err := NewQueryConditioner(nil, nil, driven.ChatOptions{}).BuildQuery(context.Background(), twoTurns)
		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	})

	t.Run("model failure", func(t *testing.T) {
		llm := &fakeLLM{chatErr: errFake}
		_, err := NewQueryConditioner(llm, nil, driven.ChatOptions{}).BuildQuery(context.Background(), twoTurns)
		assert.ErrorIs(t, err, domain.ErrModel)
		assert.ErrorIs(t, err, errFake)
	})
}
