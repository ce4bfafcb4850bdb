package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	api "pulse-backend/cmd/api"
	authUsecase "pulse-backend/internal/auth/usecase"
	"pulse-backend/internal/summary/domain"
	summaryRepo "pulse-backend/internal/summary/repository"
	summaryUsecase "pulse-backend/internal/summary/usecase"
	"pulse-backend/pkg/ai"
	"pulse-backend/pkg/config"
	"pulse-backend/pkg/database"
	"pulse-backend/pkg/logger"
	"pulse-backend/pkg/metrics"

	"github.com/spf13/cobra"
)

var (
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "pulse-backend",
		Short: "Summarizes and prioritizes content from connected sources",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cfg = config.Load()
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				cfg.Port = port
			}
			logger.Init(cfg.LogLevel, cfg.LogFormat)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
		SilenceUsage: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	summarizeCmd = &cobra.Command{
		Use:   "summarize",
		Short: "Summarize content read from stdin and store the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sourceType, _ := cmd.Flags().GetString("source-type")
			userID, _ := cmd.Flags().GetString("user")
			sourceID, _ := cmd.Flags().GetString("source-id")
			return runSummarize(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), sourceType, userID, sourceID)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().String("port", "", "port to listen on (overrides PORT)")

	summarizeCmd.Flags().String("source-type", string(domain.SourceMessage), "email, slack, calendar or message")
	summarizeCmd.Flags().String("user", "", "user the summary belongs to")
	summarizeCmd.Flags().String("source-id", "", "optional id of the source item")
	_ = summarizeCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(serveCmd, summarizeCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app holds the wired dependencies shared by every command
type app struct {
	summaryUc summaryUsecase.SummaryUsecase
	settings  *api.OllamaSettings
}

func bootstrap(ctx context.Context, recorder metrics.Recorder) (*app, error) {
	// Initialize database
	db, err := database.NewConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&domain.ContentSummary{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	// Runtime settings are read by the Ollama client on every call
	settings := api.NewOllamaSettings(cfg.OllamaBaseURL, cfg.OllamaModel)

	client, err := ai.NewCompletionClient(ctx, ai.Config{
		Provider:         ai.ProviderType(cfg.AIProvider),
		OpenAIAPIKey:     cfg.OpenAIAPIKey,
		OpenAIBaseURL:    cfg.OpenAIBaseURL,
		OpenAIModel:      cfg.OpenAIModel,
		GeminiAPIKey:     cfg.GeminiAPIKey,
		GeminiModel:      cfg.GeminiModel,
		GetOllamaBaseURL: settings.BaseURL,
		GetOllamaModel:   settings.Model,
		AnthropicAPIKey:  cfg.AnthropicAPIKey,
		AnthropicModel:   cfg.AnthropicModel,
		Policy: ai.Policy{
			Timeout:        cfg.CompletionTimeout,
			MaxRetries:     cfg.CompletionMaxRetries,
			InitialBackoff: cfg.CompletionRetryBackoff,
			RateLimit:      cfg.CompletionRateLimit,
			Recorder:       recorder,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("initialize AI client: %w", err)
	}
	slog.Info("AI client initialized", slog.String("provider", client.Name()))

	// Initialize repositories and use cases (dependency injection)
	repo := summaryRepo.NewContentSummaryRepository(db)
	return &app{
		summaryUc: summaryUsecase.NewSummaryUsecase(repo, client, recorder),
		settings:  settings,
	}, nil
}

func runServe(ctx context.Context) error {
	recorder := metrics.NewPrometheusRecorder()

	a, err := bootstrap(ctx, recorder)
	if err != nil {
		slog.Error("startup failed", slog.String("error", err.Error()))
		return err
	}

	batchWorker := summaryUsecase.NewBatchWorker(a.summaryUc, cfg.BatchWorkerCount, cfg.BatchQueueSize)
	batchWorker.Start()
	defer batchWorker.Stop()

	var validator authUsecase.TokenValidator
	if cfg.JWTSecret != "" {
		validator = authUsecase.NewTokenValidator(cfg.JWTSecret)
	} else {
		slog.Warn("JWT_SECRET not set, summary routes accept unauthenticated requests")
	}

	handler := api.NewHandler(a.summaryUc, batchWorker, a.settings, validator, recorder)
	if err := handler.Start(ctx, ":"+cfg.Port); err != nil {
		slog.Error("server stopped", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func runSummarize(ctx context.Context, in io.Reader, out io.Writer, sourceType, userID, sourceID string) error {
	content, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read content: %w", err)
	}

	input := summaryUsecase.SummarizeInput{
		UserID:     userID,
		SourceType: domain.SourceType(sourceType),
		Content:    string(content),
	}
	if sourceID != "" {
		input.SourceID = &sourceID
	}
	if err := summaryUsecase.Validate(input); err != nil {
		return err
	}

	a, err := bootstrap(ctx, metrics.Nop{})
	if err != nil {
		return err
	}

	summary, err := a.summaryUc.SummarizeContent(ctx, input)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
