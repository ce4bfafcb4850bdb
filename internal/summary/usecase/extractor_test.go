package usecase

import (
	"testing"

	"pulse-backend/internal/summary/domain"

	"github.com/stretchr/testify/assert"
)

func TestExtractVerdict(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.Verdict
	}{
		{
			name: "well formed json",
			raw:  `{"summary":"Review the Q3 budget by Friday.","priorityScore":8,"isUrgent":true}`,
			want: domain.Verdict{Summary: "Review the Q3 budget by Friday.", PriorityScore: 8, IsUrgent: true},
		},
		{
			name: "json wrapped in prose and code fence",
			raw:  "Sure! Here it is:\n```json\n{\"summary\": \"Lunch moved to 1pm.\", \"priorityScore\": 3, \"isUrgent\": false}\n```",
			want: domain.Verdict{Summary: "Lunch moved to 1pm.", PriorityScore: 3},
		},
		{
			name: "free text keeps first sentence",
			raw:  "This is about reviewing a budget. It seems moderately important.",
			want: domain.Verdict{Summary: "This is about reviewing a budget.", PriorityScore: 1, Degraded: true},
		},
		{
			name: "free text without a period",
			raw:  "  Standup notes from the team  ",
			want: domain.Verdict{Summary: "Standup notes from the team", PriorityScore: 1, Degraded: true},
		},
		{
			name: "empty reply",
			raw:  "   ",
			want: domain.Verdict{Summary: domain.SummaryUnavailable, PriorityScore: 1, Degraded: true},
		},
		{
			name: "invalid json falls back to sentence",
			raw:  `{summary: oops}. Then more text.`,
			want: domain.Verdict{Summary: "{summary: oops}.", PriorityScore: 1, Degraded: true},
		},
		{
			name: "two objects break the greedy match",
			raw:  `{"summary":"a"} and {"summary":"b"}`,
			want: domain.Verdict{Summary: `{"summary":"a"} and {"summary":"b"}`, PriorityScore: 1, Degraded: true},
		},
		{
			name: "numeric string priority",
			raw:  `{"summary":"s","priorityScore":"7","isUrgent":"true"}`,
			want: domain.Verdict{Summary: "s", PriorityScore: 7, IsUrgent: true},
		},
		{
			name: "non numeric priority",
			raw:  `{"summary":"s","priorityScore":"high","isUrgent":"yes"}`,
			want: domain.Verdict{Summary: "s", PriorityScore: 1},
		},
		{
			name: "priority above range is clamped",
			raw:  `{"summary":"s","priorityScore":15,"isUrgent":true}`,
			want: domain.Verdict{Summary: "s", PriorityScore: 10, IsUrgent: true},
		},
		{
			name: "priority below range is clamped",
			raw:  `{"summary":"s","priorityScore":-3}`,
			want: domain.Verdict{Summary: "s", PriorityScore: 1},
		},
		{
			name: "fractional priority is rounded",
			raw:  `{"summary":"s","priorityScore":7.6}`,
			want: domain.Verdict{Summary: "s", PriorityScore: 8},
		},
		{
			name: "huge priority does not overflow",
			raw:  `{"summary":"s","priorityScore":1e300}`,
			want: domain.Verdict{Summary: "s", PriorityScore: 10},
		},
		{
			name: "missing summary uses sentinel",
			raw:  `{"priorityScore":9,"isUrgent":true}`,
			want: domain.Verdict{Summary: domain.SummaryUnavailable, PriorityScore: 9, IsUrgent: true, Degraded: true},
		},
		{
			name: "null fields",
			raw:  `{"summary":null,"priorityScore":null,"isUrgent":null}`,
			want: domain.Verdict{Summary: domain.SummaryUnavailable, PriorityScore: 1, Degraded: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractVerdict(tt.raw))
		})
	}
}

func TestBuildUserPrompt(t *testing.T) {
	prompt := BuildUserPrompt(domain.SourceSlack, "deploy is blocked")

	assert.Contains(t, prompt, "summarize this slack content")
	assert.Contains(t, prompt, "Return JSON with keys: summary, priorityScore, isUrgent.")
	assert.Contains(t, prompt, "Content: deploy is blocked")
}
