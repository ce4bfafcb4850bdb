package api

import (
	"net/http"

	"pulse-backend/internal/auth/delivery"
	authUsecase "pulse-backend/internal/auth/usecase"
	summaryDelivery "pulse-backend/internal/summary/delivery"
	"pulse-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, summaryHandler *summaryDelivery.SummaryHandler, settings *OllamaSettings, tokenValidator authUsecase.TokenValidator, recorder *metrics.PrometheusRecorder) {
	protected := []gin.HandlerFunc{}
	if tokenValidator != nil {
		protected = append(protected, delivery.AuthMiddleware(tokenValidator))
	}

	// Path used by the dashboard client
	r.POST("/summarize-content", append(protected, summaryHandler.Summarize)...)

	if recorder != nil {
		r.GET("/metrics", gin.WrapH(recorder.Handler()))
	}

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Summary routes
		summaries := api.Group("/summaries")
		summaries.Use(protected...)
		{
			summaries.POST("", summaryHandler.Summarize)
			summaries.POST("/batch", summaryHandler.BatchSummarize)
			summaries.GET("", summaryHandler.ListSummaries)
			summaries.GET("/:id", summaryHandler.GetSummary)
		}

		// Settings routes - Runtime configuration
		settingsGroup := api.Group("/settings")
		settingsGroup.Use(protected...)
		{
			settingsGroup.GET("/ollama", settings.Get)
			settingsGroup.PUT("/ollama", settings.Update)
			settingsGroup.POST("/ollama/test", settings.TestConnection)
		}
	}
}
