package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "AI_PROVIDER", "OPENAI_MODEL", "COMPLETION_TIMEOUT", "COMPLETION_MAX_RETRIES", "DATABASE_DRIVER"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "openai", cfg.AIProvider)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, 30*time.Second, cfg.CompletionTimeout)
	assert.Equal(t, 2, cfg.CompletionMaxRetries)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("AI_PROVIDER", "ollama")
	t.Setenv("COMPLETION_TIMEOUT", "5s")
	t.Setenv("COMPLETION_MAX_RETRIES", "0")
	t.Setenv("COMPLETION_RATE_LIMIT", "2.5")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "ollama", cfg.AIProvider)
	assert.Equal(t, 5*time.Second, cfg.CompletionTimeout)
	assert.Equal(t, 0, cfg.CompletionMaxRetries)
	assert.InDelta(t, 2.5, cfg.CompletionRateLimit, 0.0001)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("COMPLETION_TIMEOUT", "soon")
	t.Setenv("BATCH_WORKER_COUNT", "many")

	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.CompletionTimeout)
	assert.Equal(t, 3, cfg.BatchWorkerCount)
}
