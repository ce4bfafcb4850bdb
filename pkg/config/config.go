package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Database
	DatabaseDriver string // "postgres" or "sqlite"
	DatabaseURL    string
	SQLitePath     string

	// AI provider selection: "openai", "gemini", "ollama", "anthropic" or "auto"
	AIProvider string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	GeminiAPIKey string
	GeminiModel  string

	OllamaBaseURL string
	OllamaModel   string

	AnthropicAPIKey string
	AnthropicModel  string

	// Completion call policy
	CompletionTimeout      time.Duration
	CompletionMaxRetries   int
	CompletionRetryBackoff time.Duration
	CompletionRateLimit    float64 // requests per second, 0 disables limiting

	JWTSecret string // optional, enables bearer token verification

	LogLevel  string
	LogFormat string

	BatchWorkerCount int
	BatchQueueSize   int
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:                   getEnv("PORT", "8080"),
		DatabaseDriver:         getEnv("DATABASE_DRIVER", "postgres"),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		SQLitePath:             getEnv("SQLITE_PATH", "pulse.db"),
		AIProvider:             getEnv("AI_PROVIDER", "openai"),
		OpenAIAPIKey:           getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:          getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:            getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiAPIKey:           getEnv("GEMINI_API_KEY", ""),
		GeminiModel:            getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OllamaBaseURL:          getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:            getEnv("OLLAMA_MODEL", "llama3"),
		AnthropicAPIKey:        getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:         getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		CompletionTimeout:      getDuration("COMPLETION_TIMEOUT", 30*time.Second),
		CompletionMaxRetries:   getInt("COMPLETION_MAX_RETRIES", 2),
		CompletionRetryBackoff: getDuration("COMPLETION_RETRY_BACKOFF", 500*time.Millisecond),
		CompletionRateLimit:    getFloat("COMPLETION_RATE_LIMIT", 0),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              getEnv("LOG_FORMAT", "text"),
		BatchWorkerCount:       getInt("BATCH_WORKER_COUNT", 3),
		BatchQueueSize:         getInt("BATCH_QUEUE_SIZE", 500),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
