package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"pulse-backend/internal/summary/domain"
	"pulse-backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewSQLiteConnection(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.ContentSummary{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newSummary(userID string, sourceType domain.SourceType) *domain.ContentSummary {
	return &domain.ContentSummary{
		UserID:          userID,
		SourceType:      sourceType,
		OriginalContent: "Please review the Q3 budget by Friday.",
		Summary:         "Review the Q3 budget by Friday.",
		PriorityScore:   8,
		IsUrgent:        true,
	}
}

func TestContentSummaryRepository_Create(t *testing.T) {
	repo := NewContentSummaryRepository(setupTestDB(t))
	ctx := context.Background()

	sourceID := "msg-42"
	summary := newSummary("u1", domain.SourceEmail)
	summary.SourceID = &sourceID

	require.NoError(t, repo.Create(ctx, summary))
	assert.NotEmpty(t, summary.ID)
	assert.False(t, summary.CreatedAt.IsZero())
	assert.Equal(t, summary.CreatedAt, summary.ProcessedAt)

	stored, err := repo.FindByID(ctx, summary.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "u1", stored.UserID)
	assert.Equal(t, domain.SourceEmail, stored.SourceType)
	require.NotNil(t, stored.SourceID)
	assert.Equal(t, "msg-42", *stored.SourceID)
	assert.Equal(t, "Review the Q3 budget by Friday.", stored.Summary)
	assert.Equal(t, 8, stored.PriorityScore)
	assert.True(t, stored.IsUrgent)
	assert.False(t, stored.IsDegraded)
}

func TestContentSummaryRepository_CreateKeepsNullSourceID(t *testing.T) {
	repo := NewContentSummaryRepository(setupTestDB(t))
	ctx := context.Background()

	summary := newSummary("u1", domain.SourceMessage)
	require.NoError(t, repo.Create(ctx, summary))

	stored, err := repo.FindByID(ctx, summary.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.SourceID)
}

func TestContentSummaryRepository_CreateNeverDeduplicates(t *testing.T) {
	repo := NewContentSummaryRepository(setupTestDB(t))
	ctx := context.Background()

	first := newSummary("u1", domain.SourceEmail)
	second := newSummary("u1", domain.SourceEmail)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.NotEqual(t, first.ID, second.ID)
	_, total, err := repo.FindByUserID(ctx, "u1", nil, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestContentSummaryRepository_CreateRejectsInvalid(t *testing.T) {
	repo := NewContentSummaryRepository(setupTestDB(t))
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(s *domain.ContentSummary)
	}{
		{"empty user", func(s *domain.ContentSummary) { s.UserID = "" }},
		{"unknown source", func(s *domain.ContentSummary) { s.SourceType = "fax" }},
		{"blank summary", func(s *domain.ContentSummary) { s.Summary = "  " }},
		{"priority too high", func(s *domain.ContentSummary) { s.PriorityScore = 11 }},
		{"priority too low", func(s *domain.ContentSummary) { s.PriorityScore = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSummary("u1", domain.SourceSlack)
			tt.mutate(s)
			assert.ErrorIs(t, repo.Create(ctx, s), ErrInvalidSummary)
		})
	}
}

func TestContentSummaryRepository_FindByIDMissing(t *testing.T) {
	repo := NewContentSummaryRepository(setupTestDB(t))

	stored, err := repo.FindByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestContentSummaryRepository_FindByUserID(t *testing.T) {
	repo := NewContentSummaryRepository(setupTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	for i, st := range []domain.SourceType{domain.SourceEmail, domain.SourceSlack, domain.SourceEmail} {
		s := newSummary("u1", st)
		s.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, s))
	}
	require.NoError(t, repo.Create(ctx, newSummary("u2", domain.SourceEmail)))

	all, total, err := repo.FindByUserID(ctx, "u1", nil, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	assert.True(t, all[0].CreatedAt.After(all[1].CreatedAt), "newest first")
	assert.True(t, all[1].CreatedAt.After(all[2].CreatedAt))

	email := domain.SourceEmail
	emails, total, err := repo.FindByUserID(ctx, "u1", &email, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, emails, 2)

	page, total, err := repo.FindByUserID(ctx, "u1", nil, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, all[1].ID, page[0].ID)
}
