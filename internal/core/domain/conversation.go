package domain

import "fmt"

// Role identifies who authored a conversation message.
type Role string

// Conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"

	// RoleSystem is only used when prompts are sent to a model.
	// Staff conversations never contain system messages.
	RoleSystem Role = "system"
)

// IsValid returns true for roles a staff conversation may carry.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is one turn of a conversation.
type Message struct {
	Role    Role
	Content string
}

// Conversation is an ordered, chronological sequence of messages.
type Conversation []Message

// Last returns the most recent message. ok is false for an empty conversation.
func (c Conversation) Last() (Message, bool) {
	if len(c) == 0 {
		return Message{}, false
	}
	return c[len(c)-1], true
}

// Validate checks that the conversation is non-empty and every role is known.
func (c Conversation) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: conversation is empty", ErrValidation)
	}
	for i, m := range c {
		if !m.Role.IsValid() {
			return fmt.Errorf("%w: message %d has unknown role %q", ErrValidation, i, m.Role)
		}
	}
	return nil
}

// WithUserMessage returns history followed by a new user message.
// The history slice is not modified.
func WithUserMessage(history []Message, content string) Conversation {
	out := make(Conversation, 0, len(history)+1)
	out = append(out, history...)
	return append(out, Message{Role: RoleUser, Content: content})
}
