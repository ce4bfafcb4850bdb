package ai

import (
	"context"
	"errors"
)

// CompletionClient sends one system+user prompt pair to a hosted model and
// returns the text of the top completion.
// Implement this interface to add new AI providers (OpenAI, Gemini, Ollama, Anthropic, etc.)
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Name() string
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderOpenAI    ProviderType = "openai"
	ProviderGemini    ProviderType = "gemini"
	ProviderOllama    ProviderType = "ollama"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderAuto      ProviderType = "auto"
)

// ErrEmptyCompletion means the service answered but carried no completion text slot.
var ErrEmptyCompletion = errors.New("completion service returned no choices")
