package domain

import "time"

// SourceType is the channel a piece of content came from
type SourceType string

const (
	SourceEmail    SourceType = "email"
	SourceSlack    SourceType = "slack"
	SourceCalendar SourceType = "calendar"
	SourceMessage  SourceType = "message"
)

func (s SourceType) Valid() bool {
	switch s {
	case SourceEmail, SourceSlack, SourceCalendar, SourceMessage:
		return true
	}
	return false
}

const (
	MinPriorityScore = 1
	MaxPriorityScore = 10

	// SummaryUnavailable replaces a summary that could not be extracted at all
	SummaryUnavailable = "Summary not available"
)

// ContentSummary is an AI verdict on one piece of content. Rows are insert-only.
type ContentSummary struct {
	ID              string     `json:"id" gorm:"primaryKey"`
	UserID          string     `json:"user_id" gorm:"index:idx_summary_user_created;not null"`
	SourceType      SourceType `json:"source_type" gorm:"not null"`
	SourceID        *string    `json:"source_id" gorm:"index"`
	OriginalContent string     `json:"original_content" gorm:"type:text"`
	Summary         string     `json:"summary" gorm:"type:text;not null"`
	PriorityScore   int        `json:"priority_score" gorm:"not null;default:1"`
	IsUrgent        bool       `json:"is_urgent" gorm:"not null;default:false"`
	IsDegraded      bool       `json:"is_degraded" gorm:"not null;default:false"`
	CreatedAt       time.Time  `json:"created_at" gorm:"index:idx_summary_user_created"`
	ProcessedAt     time.Time  `json:"processed_at"`
}

// TableName specifies the table name for GORM
func (ContentSummary) TableName() string {
	return "content_summaries"
}

// Verdict is what the extractor reads out of a model reply
type Verdict struct {
	Summary       string `json:"summary"`
	PriorityScore int    `json:"priorityScore"`
	IsUrgent      bool   `json:"isUrgent"`
	// Degraded marks a verdict built from fallback heuristics instead of the model's JSON
	Degraded bool `json:"degraded"`
}

// ClampPriority forces a score into [MinPriorityScore, MaxPriorityScore]
func ClampPriority(score int) int {
	if score < MinPriorityScore {
		return MinPriorityScore
	}
	if score > MaxPriorityScore {
		return MaxPriorityScore
	}
	return score
}
