package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"pulse-backend/internal/summary/domain"
	"pulse-backend/internal/summary/repository"
	"pulse-backend/pkg/ai"
	"pulse-backend/pkg/logger"
	"pulse-backend/pkg/metrics"

	"github.com/pkg/errors"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Stages of one summarization, used as the "stage" log attribute
const (
	stageValidating  = "validating"
	stageModelCalled = "model_called"
	stageExtracted   = "extracted"
	stagePersisted   = "persisted"
)

// Outcomes reported to the metrics recorder
const (
	outcomeSuccess          = "success"
	outcomeValidationError  = "validation_error"
	outcomeUpstreamError    = "upstream_error"
	outcomePersistenceError = "persistence_error"
)

// summaryUsecase implements SummaryUsecase interface
type summaryUsecase struct {
	summaryRepo repository.ContentSummaryRepository
	client      ai.CompletionClient
	recorder    metrics.Recorder
	log         *slog.Logger
	now         func() time.Time
}

// NewSummaryUsecase creates a new instance of summaryUsecase.
// recorder may be nil.
func NewSummaryUsecase(summaryRepo repository.ContentSummaryRepository, client ai.CompletionClient, recorder metrics.Recorder) SummaryUsecase {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &summaryUsecase{
		summaryRepo: summaryRepo,
		client:      client,
		recorder:    recorder,
		log:         logger.NewModuleLogger("summary", "usecase"),
		now:         time.Now,
	}
}

// Validate checks a request before any downstream call.
// Content is checked first so an empty body reports "Content is required".
func Validate(in SummarizeInput) error {
	if strings.TrimSpace(in.Content) == "" {
		return newValidationError("Content is required")
	}
	if strings.TrimSpace(in.UserID) == "" {
		return newValidationError("User ID is required")
	}
	if !in.SourceType.Valid() {
		return newValidationError("Invalid source type: must be one of email, slack, calendar, message")
	}
	return nil
}

func (u *summaryUsecase) SummarizeContent(ctx context.Context, in SummarizeInput) (*domain.ContentSummary, error) {
	log := u.log.With(
		slog.String("user_id", in.UserID),
		slog.String("source_type", string(in.SourceType)),
	)
	sourceLabel := string(in.SourceType)

	if err := Validate(in); err != nil {
		log.Warn("summarize rejected", slog.String("stage", stageValidating), slog.String("error", err.Error()))
		u.recorder.ObserveSummarize(sourceLabel, outcomeValidationError)
		return nil, err
	}

	raw, err := u.client.Complete(ctx, systemPrompt, BuildUserPrompt(in.SourceType, in.Content))
	if err != nil {
		log.Error("completion failed",
			slog.String("stage", stageModelCalled),
			slog.String("provider", u.client.Name()),
			slog.String("error", err.Error()),
		)
		u.recorder.ObserveSummarize(sourceLabel, outcomeUpstreamError)
		return nil, errors.WithStack(&UpstreamError{Provider: u.client.Name(), Err: err})
	}
	log.Debug("completion received", slog.String("stage", stageModelCalled), slog.String("raw", rawPreview(raw)))

	verdict := ExtractVerdict(raw)
	processedAt := u.now()
	if verdict.Degraded {
		log.Warn("model reply did not parse, using fallback verdict",
			slog.String("stage", stageExtracted),
			slog.String("raw", rawPreview(raw)),
		)
		u.recorder.ObserveDegraded(sourceLabel)
	}

	summary := &domain.ContentSummary{
		UserID:          in.UserID,
		SourceType:      in.SourceType,
		SourceID:        normalizeSourceID(in.SourceID),
		OriginalContent: in.Content,
		Summary:         verdict.Summary,
		PriorityScore:   domain.ClampPriority(verdict.PriorityScore),
		IsUrgent:        verdict.IsUrgent,
		IsDegraded:      verdict.Degraded,
		ProcessedAt:     processedAt,
	}

	if err := u.summaryRepo.Create(ctx, summary); err != nil {
		log.Error("saving summary failed",
			slog.String("stage", stagePersisted),
			slog.String("error", err.Error()),
			slog.String("raw", rawPreview(raw)),
		)
		u.recorder.ObserveSummarize(sourceLabel, outcomePersistenceError)
		return nil, errors.WithStack(&PersistenceError{Err: err})
	}

	log.Info("summary stored",
		slog.String("id", summary.ID),
		slog.Int("priority_score", summary.PriorityScore),
		slog.Bool("is_urgent", summary.IsUrgent),
		slog.Bool("is_degraded", summary.IsDegraded),
	)
	u.recorder.ObserveSummarize(sourceLabel, outcomeSuccess)
	return summary, nil
}

func (u *summaryUsecase) ListSummaries(ctx context.Context, filter ListFilter) ([]*domain.ContentSummary, int64, error) {
	if strings.TrimSpace(filter.UserID) == "" {
		return nil, 0, newValidationError("User ID is required")
	}
	if filter.SourceType != nil && !filter.SourceType.Valid() {
		return nil, 0, newValidationError("Invalid source type: must be one of email, slack, calendar, message")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	summaries, total, err := u.summaryRepo.FindByUserID(ctx, filter.UserID, filter.SourceType, limit, offset)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list summaries")
	}
	return summaries, total, nil
}

func (u *summaryUsecase) GetSummary(ctx context.Context, userID, id string) (*domain.ContentSummary, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, newValidationError("User ID is required")
	}

	summary, err := u.summaryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get summary")
	}
	if summary == nil || summary.UserID != userID {
		return nil, ErrSummaryNotFound
	}
	return summary, nil
}

func normalizeSourceID(id *string) *string {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	return id
}
