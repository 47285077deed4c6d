// Package providers adapts model-vendor SDKs to the engine's LLMClient.
package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mkobayashi/tabiplan/internal/engine"

	openai "github.com/meguminnnnnnnnn/go-openai"
)

// DashScopeBaseURL is the OpenAI-compatible endpoint of Alibaba's
// DashScope service, which hosts the qwen model family.
const DashScopeBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"

// OpenAIClient implements engine.LLMClient against any OpenAI-compatible
// chat completion endpoint.
type OpenAIClient struct {
	client  *openai.Client
	baseURL string
}

// NewOpenAIClient creates a client. An empty baseURL targets DashScope.
func NewOpenAIClient(apiKey, baseURL string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key is not configured")
	}
	if baseURL == "" {
		baseURL = DashScopeBaseURL
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &OpenAIClient{
		client:  openai.NewClientWithConfig(config),
		baseURL: baseURL,
	}, nil
}

// Chat implements engine.LLMClient.
func (c *OpenAIClient) Chat(ctx context.Context, model string, messages []engine.ChatMessage, opts engine.ChatOptions) (engine.LLMResponse, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		var role string
		switch msg.Role {
		case engine.RoleSystem:
			role = openai.ChatMessageRoleSystem
		case engine.RoleUser:
			role = openai.ChatMessageRoleUser
		case engine.RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		default:
			return engine.LLMResponse{}, fmt.Errorf("unsupported message role: %s", msg.Role)
		}
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: msgs,
	}
	if opts.MaxOutputTokens > 0 {
		req.MaxTokens = opts.MaxOutputTokens
	}
	if opts.Temperature > 0 {
		req.Temperature = &opts.Temperature
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return engine.LLMResponse{}, engine.WrapTransportError(err, extractErrorStatus(err))
	}

	if len(resp.Choices) == 0 {
		return engine.LLMResponse{}, fmt.Errorf("empty response from model endpoint")
	}

	return engine.LLMResponse{
		Text: resp.Choices[0].Message.Content,
		Usage: engine.Usage{
			Prompt:     resp.Usage.PromptTokens,
			Completion: resp.Usage.CompletionTokens,
		},
	}, nil
}

// extractErrorStatus guesses the HTTP status from an SDK error string. The
// SDK does not expose the status on every error path, so string matching is
// the best signal available.
func extractErrorStatus(err error) int {
	if err == nil {
		return 0
	}
	errStr := err.Error()
	switch {
	case strings.Contains(errStr, "429"):
		return http.StatusTooManyRequests
	case strings.Contains(errStr, "500"):
		return http.StatusInternalServerError
	case strings.Contains(errStr, "502"):
		return http.StatusBadGateway
	case strings.Contains(errStr, "503"):
		return http.StatusServiceUnavailable
	case strings.Contains(errStr, "504"):
		return http.StatusGatewayTimeout
	case strings.Contains(errStr, "401"):
		return http.StatusUnauthorized
	case strings.Contains(errStr, "403"):
		return http.StatusForbidden
	case strings.Contains(errStr, "402"):
		return http.StatusPaymentRequired
	case strings.Contains(errStr, "400"):
		return http.StatusBadRequest
	}
	return 0
}
