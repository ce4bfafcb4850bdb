package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"pulse-backend/internal/summary/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidSummary is returned when a record would break the table constraints
var ErrInvalidSummary = errors.New("invalid content summary")

// ContentSummaryRepository defines persistence for content summaries.
// Summaries are immutable: there is no update or delete.
type ContentSummaryRepository interface {
	// Create assigns id and timestamps, then inserts the summary
	Create(ctx context.Context, summary *domain.ContentSummary) error
	// FindByID returns nil, nil when no row matches
	FindByID(ctx context.Context, id string) (*domain.ContentSummary, error)
	// FindByUserID lists a user's summaries, newest first
	FindByUserID(ctx context.Context, userID string, sourceType *domain.SourceType, limit, offset int) ([]*domain.ContentSummary, int64, error)
}

// contentSummaryRepository implements ContentSummaryRepository using GORM
type contentSummaryRepository struct {
	db *gorm.DB
}

// NewContentSummaryRepository creates a new instance of contentSummaryRepository
func NewContentSummaryRepository(db *gorm.DB) ContentSummaryRepository {
	return &contentSummaryRepository{
		db: db,
	}
}

func (r *contentSummaryRepository) Create(ctx context.Context, summary *domain.ContentSummary) error {
	if err := validate(summary); err != nil {
		return err
	}

	if summary.ID == "" {
		summary.ID = uuid.New().String()
	}
	now := time.Now()
	if summary.CreatedAt.IsZero() {
		summary.CreatedAt = now
	}
	if summary.ProcessedAt.IsZero() {
		summary.ProcessedAt = summary.CreatedAt
	}

	return r.db.WithContext(ctx).Create(summary).Error
}

func (r *contentSummaryRepository) FindByID(ctx context.Context, id string) (*domain.ContentSummary, error) {
	var summary domain.ContentSummary
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

func (r *contentSummaryRepository) FindByUserID(ctx context.Context, userID string, sourceType *domain.SourceType, limit, offset int) ([]*domain.ContentSummary, int64, error) {
	var summaries []*domain.ContentSummary
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.ContentSummary{}).Where("user_id = ?", userID)
	if sourceType != nil {
		query = query.Where("source_type = ?", *sourceType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&summaries).Error
	return summaries, total, err
}

func validate(s *domain.ContentSummary) error {
	switch {
	case s == nil:
		return ErrInvalidSummary
	case strings.TrimSpace(s.UserID) == "":
		return errors.Join(ErrInvalidSummary, errors.New("user_id is required"))
	case !s.SourceType.Valid():
		return errors.Join(ErrInvalidSummary, errors.New("unknown source_type "+string(s.SourceType)))
	case strings.TrimSpace(s.Summary) == "":
		return errors.Join(ErrInvalidSummary, errors.New("summary is empty"))
	case s.PriorityScore < domain.MinPriorityScore || s.PriorityScore > domain.MaxPriorityScore:
		return errors.Join(ErrInvalidSummary, errors.New("priority_score out of range"))
	}
	return nil
}
