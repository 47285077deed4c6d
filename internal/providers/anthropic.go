package providers

import (
	"context"
	"fmt"

	"github.com/mkobayashi/tabiplan/internal/engine"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// AnthropicClient implements engine.LLMClient against the Anthropic API.
// The planning protocol travels in plain text, so only text blocks are
// mapped.
type AnthropicClient struct {
	client *anthropic.Client
}

// NewAnthropicClient creates a client.
func NewAnthropicClient(apiKey string) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key is not configured")
	}
	return &AnthropicClient{client: anthropic.NewClient(apiKey)}, nil
}

// Chat implements engine.LLMClient.
func (c *AnthropicClient) Chat(ctx context.Context, model string, messages []engine.ChatMessage, opts engine.ChatOptions) (engine.LLMResponse, error) {
	var systemParts []anthropic.MessageSystemPart
	var msgs []anthropic.Message

	for _, msg := range messages {
		switch msg.Role {
		case engine.RoleSystem:
			systemParts = append(systemParts, anthropic.MessageSystemPart{
				Type: "text",
				Text: msg.Content,
			})
		case engine.RoleUser:
			msgs = append(msgs, anthropic.Message{
				Role:    anthropic.RoleUser,
				Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(msg.Content)},
			})
		case engine.RoleAssistant:
			msgs = append(msgs, anthropic.Message{
				Role:    anthropic.RoleAssistant,
				Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(msg.Content)},
			})
		default:
			return engine.LLMResponse{}, fmt.Errorf("unsupported message role: %s", msg.Role)
		}
	}

	maxTokens := 4096
	if opts.MaxOutputTokens > 0 {
		maxTokens = opts.MaxOutputTokens
	}
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = 0.1
	}

	req := anthropic.MessagesRequest{
		Model:       anthropic.Model(model),
		Messages:    msgs,
		MaxTokens:   maxTokens,
		Temperature: &temperature,
	}
	if len(systemParts) > 0 {
		req.MultiSystem = systemParts
	}

	resp, err := c.client.CreateMessages(ctx, req)
	if err != nil {
		return engine.LLMResponse{}, engine.WrapTransportError(err, extractErrorStatus(err))
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			text += *block.Text
		}
	}

	return engine.LLMResponse{
		Text: text,
		Usage: engine.Usage{
			Prompt:     resp.Usage.InputTokens,
			Completion: resp.Usage.OutputTokens,
		},
	}, nil
}
