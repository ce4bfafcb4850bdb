package usecase

import (
	"context"

	"pulse-backend/internal/summary/domain"
)

// SummarizeInput is one piece of content to summarize
type SummarizeInput struct {
	UserID     string
	SourceType domain.SourceType
	SourceID   *string
	Content    string
}

// ListFilter narrows ListSummaries. A nil SourceType matches all sources.
type ListFilter struct {
	UserID     string
	SourceType *domain.SourceType
	Limit      int
	Offset     int
}

// SummaryUsecase defines the interface for content summary use cases
type SummaryUsecase interface {
	SummarizeContent(ctx context.Context, in SummarizeInput) (*domain.ContentSummary, error)
	ListSummaries(ctx context.Context, filter ListFilter) ([]*domain.ContentSummary, int64, error)
	GetSummary(ctx context.Context, userID, id string) (*domain.ContentSummary, error)
}
