package engine

import "context"

// MessageRole represents the role of a chat message.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ChatMessage is the provider-agnostic message we pass around.
type ChatMessage struct {
	Role    MessageRole
	Content string
}

// Usage holds token accounting returned by providers for one call.
type Usage struct {
	Prompt     int
	Completion int
}

// Total returns the combined token count of the report.
func (u Usage) Total() int { return u.Prompt + u.Completion }

// LLMResponse is a normalized result of one chat call.
type LLMResponse struct {
	Text  string
	Usage Usage
}

// LLMClient abstracts the chosen SDK (OpenAI-compatible, Anthropic, etc.).
// Implementations are synchronous; a transport failure is returned as an
// error, wrapped as *TransportError when status metadata is available.
type LLMClient interface {
	Chat(ctx context.Context, model string, messages []ChatMessage, opts ChatOptions) (LLMResponse, error)
}

// ChatOptions keeps knobs forwarded to the SDK.
type ChatOptions struct {
	Temperature     float32
	MaxOutputTokens int
}
