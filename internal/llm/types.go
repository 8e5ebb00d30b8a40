package llm

import "context"

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Roles understood by every provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatParams holds parameters for chat completion requests.
type ChatParams struct {
	// Model specifies the model to use. If empty, the client's default model is used.
	Model string

	// MaxTokens caps the generated output. If 0, the provider default applies.
	MaxTokens int

	// Temperature controls the randomness of the output.
	Temperature float32
}

// ChatCompleter is satisfied by every completion backend in this package.
type ChatCompleter interface {
	ChatWithMessages(ctx context.Context, messages []Message, params ChatParams) (string, error)
}
