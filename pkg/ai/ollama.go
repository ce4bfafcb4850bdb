package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"
)

// OllamaClient implements CompletionClient using a local Ollama server
type OllamaClient struct {
	getBaseURL func() string // Dynamic getter for BaseURL
	getModel   func() string // Dynamic getter for Model
	httpClient *http.Client
}

// NewOllamaClient creates a new Ollama client
func NewOllamaClient(baseURL, model string) *OllamaClient {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3"
	}
	// Use static values (for backward compatibility when no runtime config)
	return NewOllamaClientWithGetters(
		func() string { return baseURL },
		func() string { return model },
	)
}

// NewOllamaClientWithGetters creates a new Ollama client with dynamic getters
func NewOllamaClientWithGetters(getBaseURL, getModel func() string) *OllamaClient {
	return &OllamaClient{
		getBaseURL: getBaseURL,
		getModel:   getModel,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (o *OllamaClient) Name() string { return string(ProviderOllama) }

// Complete implements CompletionClient
func (o *OllamaClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	client, err := newOllamaAPIClient(o.getBaseURL(), o.httpClient)
	if err != nil {
		return "", err
	}

	stream := false
	req := &ollama.GenerateRequest{
		Model:  o.getModel(),
		System: systemPrompt,
		Prompt: userPrompt,
		Stream: &stream,
		Format: json.RawMessage(`"json"`),
		Options: map[string]any{
			"temperature": 0.3,
		},
	}

	var (
		text strings.Builder
		done bool
	)
	err = client.Generate(ctx, req, func(gr ollama.GenerateResponse) error {
		text.WriteString(gr.Response)
		done = gr.Done
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	if !done && text.Len() == 0 {
		return "", ErrEmptyCompletion
	}

	return text.String(), nil
}

// PingOllama checks that an Ollama server answers its model listing endpoint.
func PingOllama(ctx context.Context, baseURL string) error {
	client, err := newOllamaAPIClient(baseURL, &http.Client{Timeout: 10 * time.Second})
	if err != nil {
		return err
	}
	if _, err := client.List(ctx); err != nil {
		return fmt.Errorf("ollama unreachable: %w", err)
	}
	return nil
}

func newOllamaAPIClient(baseURL string, httpClient *http.Client) (*ollama.Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid ollama base URL %q", baseURL)
	}
	return ollama.NewClient(u, httpClient), nil
}
