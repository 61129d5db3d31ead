package ai

import "context"

// AI drafts text from a conversation. It knows nothing about offers or chats.
type AI interface {
	GetReply(ctx context.Context, history []Message) (string, error)
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is the provider-neutral dialogue format.
type Message struct {
	Role Role
	Text string
}
