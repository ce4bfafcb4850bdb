package dto

import "pulse-backend/internal/summary/domain"

// SummarizeRequest is the body of POST /summarize-content.
// Field names are camelCase to match the dashboard client.
type SummarizeRequest struct {
	SourceType string  `json:"sourceType"`
	SourceID   *string `json:"sourceId,omitempty"`
	Content    string  `json:"content"`
	UserID     string  `json:"userId"`
}

type SummarizeResponse struct {
	Success bool                   `json:"success"`
	Summary *domain.ContentSummary `json:"summary"`
}

// ErrorResponse is the uniform failure envelope
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type BatchSummarizeRequest struct {
	Items []SummarizeRequest `json:"items" binding:"required"`
}

type BatchSummarizeResponse struct {
	Queued  int `json:"queued"`
	Dropped int `json:"dropped"`
}

type ListSummariesResponse struct {
	Summaries []*domain.ContentSummary `json:"summaries"`
	Total     int64                    `json:"total"`
	Limit     int                      `json:"limit"`
	Offset    int                      `json:"offset"`
}
