package driving

import (
	"context"

	"github.com/ocean48/oceanbot/internal/core/domain"
)

// ChatService answers staff questions from the indexed documents.
type ChatService interface {
	// Answer conditions a search query from the conversation, retrieves
	// passages and streams the model's answer. prefix is appended to the
	// policy preamble. The caller must Close the stream.
	Answer(ctx context.Context, prefix string, conversation domain.Conversation) (AnswerStream, error)
}

// AnswerStream yields answer fragments until io.EOF.
type AnswerStream interface {
	Recv() (string, error)
	Close() error
}
