package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"pulse-backend/pkg/logger"
)

// FallbackClient implements provider routing with fallback: providers are
// tried in order and the next one is used when the current one fails.
type FallbackClient struct {
	providers []CompletionClient
	logger    *slog.Logger
}

// NewFallbackClient creates a fallback chain. Nil providers are skipped.
func NewFallbackClient(providers ...CompletionClient) *FallbackClient {
	var chain []CompletionClient
	for _, p := range providers {
		if p != nil {
			chain = append(chain, p)
		}
	}
	return &FallbackClient{
		providers: chain,
		logger:    logger.NewModuleLogger("ai", "fallback"),
	}
}

func (f *FallbackClient) Name() string {
	names := make([]string, len(f.providers))
	for i, p := range f.providers {
		names[i] = p.Name()
	}
	return string(ProviderAuto) + "(" + strings.Join(names, ",") + ")"
}

// Complete tries each provider in order and returns the first success
func (f *FallbackClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if len(f.providers) == 0 {
		return "", fmt.Errorf("no AI provider available for completion")
	}

	var errs []error
	for i, p := range f.providers {
		result, err := p.Complete(ctx, systemPrompt, userPrompt)
		if err == nil {
			if i > 0 {
				f.logger.Info("completion served by fallback provider", "provider", p.Name())
			}
			return result, nil
		}

		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
		if ctx.Err() != nil {
			break
		}

		switch {
		case isConnectionError(err):
			f.logger.Warn("provider connection failed, falling back", "provider", p.Name(), "error", err)
		case isQuotaError(err):
			f.logger.Warn("provider quota exhausted, falling back", "provider", p.Name(), "error", err)
		default:
			f.logger.Warn("provider error, falling back", "provider", p.Name(), "error", err)
		}
	}

	return "", fmt.Errorf("all AI providers failed: %w", errors.Join(errs...))
}
