package usecase

import (
	"fmt"

	"pulse-backend/internal/summary/domain"
)

const systemPrompt = "You are an efficient assistant that summarizes content for busy professionals. " +
	"Create only one sentence summaries that highlight the most important information. " +
	"Also assess urgency on a scale of 1-10."

// BuildUserPrompt asks for a one-sentence summary plus a priority verdict as JSON
func BuildUserPrompt(sourceType domain.SourceType, content string) string {
	return fmt.Sprintf(
		"Please summarize this %s content in exactly one clear and concise sentence. "+
			"Also provide a priority score between 1-10 where 10 is extremely urgent and 1 is not urgent at all, "+
			"and indicate if it's urgent (true/false). "+
			"Return JSON with keys: summary, priorityScore, isUrgent.\n\nContent: %s",
		sourceType, content,
	)
}
