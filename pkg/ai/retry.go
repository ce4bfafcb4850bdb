package ai

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"pulse-backend/pkg/logger"
	"pulse-backend/pkg/metrics"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/cenkalti/backoff/v4"
	ollama "github.com/ollama/ollama/api"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// Policy bounds each completion call made through a ResilientClient.
type Policy struct {
	Timeout        time.Duration // per attempt
	MaxRetries     int           // 0 means a single attempt
	InitialBackoff time.Duration
	RateLimit      float64 // requests per second, 0 disables limiting
	Recorder       metrics.Recorder
}

// ResilientClient wraps a provider with a per-attempt timeout, an optional
// rate limit and exponential backoff on transient failures.
type ResilientClient struct {
	next     CompletionClient
	policy   Policy
	limiter  *rate.Limiter
	recorder metrics.Recorder
	logger   *slog.Logger
}

func NewResilientClient(next CompletionClient, policy Policy) *ResilientClient {
	if policy.Timeout <= 0 {
		policy.Timeout = 30 * time.Second
	}
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	if policy.InitialBackoff <= 0 {
		policy.InitialBackoff = 500 * time.Millisecond
	}

	r := &ResilientClient{
		next:     next,
		policy:   policy,
		recorder: policy.Recorder,
		logger:   logger.NewModuleLogger("ai", next.Name()),
	}
	if r.recorder == nil {
		r.recorder = metrics.Nop{}
	}
	if policy.RateLimit > 0 {
		burst := int(policy.RateLimit)
		if burst < 1 {
			burst = 1
		}
		r.limiter = rate.NewLimiter(rate.Limit(policy.RateLimit), burst)
	}
	return r
}

func (r *ResilientClient) Name() string { return r.next.Name() }

// Complete implements CompletionClient
func (r *ResilientClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var (
		text    string
		attempt int
	)

	op := func() error {
		attempt++
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return backoff.Permanent(err)
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, r.policy.Timeout)
		defer cancel()

		start := time.Now()
		out, err := r.next.Complete(callCtx, systemPrompt, userPrompt)
		r.recorder.ObserveCompletion(r.next.Name(), time.Since(start), err)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			if !IsTransient(err) {
				return backoff.Permanent(err)
			}
			r.logger.Warn("transient completion failure",
				"attempt", attempt,
				"max_retries", r.policy.MaxRetries,
				"error", err,
			)
			return err
		}

		text = out
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.policy.InitialBackoff
	b.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(r.policy.MaxRetries)), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return "", err
	}
	return text, nil
}

// IsTransient reports whether a failed completion call is worth repeating:
// timeouts, network errors, rate limiting and 5xx answers. A reply that was
// received but could not be used is never transient.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, ErrEmptyCompletion) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	if code, ok := statusCode(err); ok {
		return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return isConnectionError(err) || isQuotaError(err)
}

// statusCode digs the HTTP status out of the provider SDK error types.
func statusCode(err error) (int, bool) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return apiErr.HTTPStatusCode, true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return reqErr.HTTPStatusCode, true
	}
	var ollamaErr ollama.StatusError
	if errors.As(err, &ollamaErr) {
		return ollamaErr.StatusCode, true
	}
	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return anthropicErr.StatusCode, true
	}
	return 0, false
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	return containsAny(err.Error(),
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"timeout",
		"dial tcp",
		"EOF",
	)
}

// isQuotaError checks if the error indicates API quota exhaustion (429)
func isQuotaError(err error) bool {
	return containsAny(err.Error(),
		"429",
		"quota",
		"rate limit",
		"too many requests",
		"resource exhausted",
	)
}

func containsAny(s string, indicators ...string) bool {
	s = strings.ToLower(s)
	for _, indicator := range indicators {
		if strings.Contains(s, strings.ToLower(indicator)) {
			return true
		}
	}
	return false
}
