package usecase

import (
	"math"
	"strings"

	"pulse-backend/internal/summary/domain"

	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// ExtractVerdict reads {summary, priorityScore, isUrgent} out of a model reply.
// It never fails: anything it cannot read falls back to defaults and the
// verdict is marked degraded.
func ExtractVerdict(raw string) domain.Verdict {
	if object, ok := findJSONObject(raw); ok {
		return verdictFromJSON(object)
	}
	return sentenceFallback(raw)
}

// findJSONObject returns the span from the first '{' to the last '}'.
// The model is asked for exactly one object, so a greedy match is enough.
func findJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", false
	}
	object := raw[start : end+1]
	if !gjson.Valid(object) {
		return "", false
	}
	return object, true
}

func verdictFromJSON(object string) domain.Verdict {
	fields := gjson.GetMany(object, "summary", "priorityScore", "isUrgent")

	verdict := domain.Verdict{
		Summary:       strings.TrimSpace(readString(fields[0])),
		PriorityScore: readPriority(fields[1]),
		IsUrgent:      readBool(fields[2]),
	}
	if verdict.Summary == "" {
		verdict.Summary = domain.SummaryUnavailable
		verdict.Degraded = true
	}
	return verdict
}

func readString(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number, gjson.True, gjson.False:
		return r.Raw
	}
	return ""
}

func readPriority(r gjson.Result) int {
	var score float64
	switch r.Type {
	case gjson.Number:
		score = r.Num
	case gjson.String:
		f, err := cast.ToFloat64E(strings.TrimSpace(r.Str))
		if err != nil {
			return domain.MinPriorityScore
		}
		score = f
	default:
		return domain.MinPriorityScore
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return domain.MinPriorityScore
	}
	// Clamp before converting so huge values cannot overflow int.
	score = math.Max(domain.MinPriorityScore, math.Min(domain.MaxPriorityScore, math.Round(score)))
	return domain.ClampPriority(int(score))
}

func readBool(r gjson.Result) bool {
	switch r.Type {
	case gjson.True:
		return true
	case gjson.String:
		b, err := cast.ToBoolE(strings.ToLower(strings.TrimSpace(r.Str)))
		return err == nil && b
	}
	return false
}

// sentenceFallback keeps the text up to and including the first '.'.
func sentenceFallback(raw string) domain.Verdict {
	verdict := domain.Verdict{
		Summary:       domain.SummaryUnavailable,
		PriorityScore: domain.MinPriorityScore,
		Degraded:      true,
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return verdict
	}
	if i := strings.Index(text, "."); i >= 0 {
		text = strings.TrimSpace(text[:i+1])
	}
	if text != "" && text != "." {
		verdict.Summary = text
	}
	return verdict
}

// rawPreview keeps log lines bounded when a reply is logged for diagnosis.
func rawPreview(raw string) string {
	const max = 500
	if len(raw) <= max {
		return raw
	}
	return raw[:max] + "..."
}
