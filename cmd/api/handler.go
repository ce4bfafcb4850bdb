package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	authUsecase "pulse-backend/internal/auth/usecase"
	summaryDelivery "pulse-backend/internal/summary/delivery"
	summaryUsecase "pulse-backend/internal/summary/usecase"
	"pulse-backend/pkg/logger"
	"pulse-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

const corsAllowHeaders = "authorization, x-client-info, apikey, content-type"

type Handler struct {
	summaryHandler *summaryDelivery.SummaryHandler
	settings       *OllamaSettings
	tokenValidator authUsecase.TokenValidator
	recorder       *metrics.PrometheusRecorder
	log            *slog.Logger
}

// NewHandler wires the HTTP layer. tokenValidator and recorder may be nil:
// a nil validator leaves the summary routes open, a nil recorder drops /metrics.
func NewHandler(
	summaryUc summaryUsecase.SummaryUsecase,
	batchWorker *summaryUsecase.BatchWorker,
	settings *OllamaSettings,
	tokenValidator authUsecase.TokenValidator,
	recorder *metrics.PrometheusRecorder,
) *Handler {
	return &Handler{
		summaryHandler: summaryDelivery.NewSummaryHandler(summaryUc, batchWorker),
		settings:       settings,
		tokenValidator: tokenValidator,
		recorder:       recorder,
		log:            logger.NewModuleLogger("api", "http"),
	}
}

// Engine builds the gin engine with middleware and routes
func (h *Handler) Engine() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery(), h.requestLogger(), corsMiddleware())

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	SetupRoutes(r, h.summaryHandler, h.settings, h.tokenValidator, h.recorder)
	return r
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (h *Handler) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.log.Info("server starting", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		h.log.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// corsMiddleware allows any origin. Preflight requests are answered here,
// before routing, so OPTIONS works on every path.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		h.log.Info("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}
