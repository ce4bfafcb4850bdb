package api

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"pulse-backend/pkg/ai"

	"github.com/gin-gonic/gin"
)

// OllamaSettings holds the Ollama endpoint, which can be changed at runtime.
// The Ollama completion client reads it through BaseURL and Model on every call.
type OllamaSettings struct {
	mu      sync.RWMutex
	baseURL string
	model   string
	ping    func(ctx context.Context, baseURL string) error
}

// NewOllamaSettings initializes runtime settings from static config
func NewOllamaSettings(baseURL, model string) *OllamaSettings {
	return &OllamaSettings{
		baseURL: baseURL,
		model:   model,
		ping:    ai.PingOllama,
	}
}

func (s *OllamaSettings) BaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseURL
}

func (s *OllamaSettings) Model() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// UpdateOllamaSettingsRequest represents the request body for updating Ollama settings
type UpdateOllamaSettingsRequest struct {
	OllamaBaseURL string `json:"ollama_base_url" binding:"required"`
	OllamaModel   string `json:"ollama_model,omitempty"`
}

// Get returns current Ollama configuration
// GET /api/settings/ollama
func (s *OllamaSettings) Get(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"ollama_base_url": s.baseURL,
		"ollama_model":    s.model,
	})
}

// Update changes Ollama configuration at runtime
// PUT /api/settings/ollama
func (s *OllamaSettings) Update(c *gin.Context) {
	var req UpdateOllamaSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if u, err := url.Parse(req.OllamaBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ollama_base_url must be an absolute URL"})
		return
	}

	s.mu.Lock()
	s.baseURL = req.OllamaBaseURL
	if req.OllamaModel != "" {
		s.model = req.OllamaModel
	}
	model := s.model
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"message":         "Ollama settings updated successfully",
		"ollama_base_url": req.OllamaBaseURL,
		"ollama_model":    model,
	})
}

// TestConnection checks whether the Ollama server is reachable
// POST /api/settings/ollama/test
func (s *OllamaSettings) TestConnection(c *gin.Context) {
	var req struct {
		OllamaBaseURL string `json:"ollama_base_url"`
	}
	// No body means test the current config
	_ = c.ShouldBindJSON(&req)
	if req.OllamaBaseURL == "" {
		req.OllamaBaseURL = s.BaseURL()
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := s.ping(ctx, req.OllamaBaseURL); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"connected": false,
			"error":     err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"connected":       true,
		"ollama_base_url": req.OllamaBaseURL,
	})
}
