package ai

import (
	"context"
	"fmt"
)

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	GeminiAPIKey string
	GeminiModel  string

	// Ollama settings are read through getters so they can change at runtime
	GetOllamaBaseURL func() string
	GetOllamaModel   func() string

	AnthropicAPIKey string
	AnthropicModel  string

	Policy Policy
}

// NewCompletionClient creates a CompletionClient based on the config.
// Every provider is wrapped in a ResilientClient; "auto" chains all providers
// that have credentials, with Ollama last.
func NewCompletionClient(ctx context.Context, cfg Config) (CompletionClient, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		return NewResilientClient(NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), cfg.Policy), nil

	case ProviderGemini:
		gemini, err := NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return NewResilientClient(gemini, cfg.Policy), nil

	case ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for Anthropic provider")
		}
		return NewResilientClient(NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel), cfg.Policy), nil

	case ProviderOllama:
		return NewResilientClient(newOllamaFromConfig(cfg), cfg.Policy), nil

	case ProviderAuto, "":
		var chain []CompletionClient
		if cfg.OpenAIAPIKey != "" {
			chain = append(chain, NewResilientClient(NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), cfg.Policy))
		}
		if cfg.AnthropicAPIKey != "" {
			chain = append(chain, NewResilientClient(NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel), cfg.Policy))
		}
		if cfg.GeminiAPIKey != "" {
			gemini, err := NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
			if err != nil {
				return nil, err
			}
			chain = append(chain, NewResilientClient(gemini, cfg.Policy))
		}
		chain = append(chain, NewResilientClient(newOllamaFromConfig(cfg), cfg.Policy))
		if len(chain) == 1 {
			return chain[0], nil
		}
		return NewFallbackClient(chain...), nil

	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

func newOllamaFromConfig(cfg Config) *OllamaClient {
	if cfg.GetOllamaBaseURL != nil && cfg.GetOllamaModel != nil {
		return NewOllamaClientWithGetters(cfg.GetOllamaBaseURL, cfg.GetOllamaModel)
	}
	return NewOllamaClient("", "")
}
