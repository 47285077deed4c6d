package providers

import (
	"fmt"

	"github.com/mkobayashi/tabiplan/internal/config"
	"github.com/mkobayashi/tabiplan/internal/engine"
)

// NewLLMClient creates the provider-specific client selected by the config.
func NewLLMClient(cfg *config.Config) (engine.LLMClient, error) {
	switch cfg.Provider {
	case "", "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("no API key configured for provider openai (set \"key\" in config.json or TABIPLAN_API_KEY)")
		}
		client, err := NewOpenAIClient(cfg.APIKey, cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		return client, nil

	case "anthropic":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("no API key configured for provider anthropic (set \"key\" in config.json or ANTHROPIC_API_KEY)")
		}
		client, err := NewAnthropicClient(cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create Anthropic client: %w", err)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s (supported: openai, anthropic)", cfg.Provider)
	}
}
