package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"pulse-backend/internal/summary/domain"

	"github.com/google/uuid"
)

type fakeCompletionClient struct {
	mu      sync.Mutex
	reply   string
	err     error
	calls   int
	prompts []string
}

func (f *fakeCompletionClient) Name() string { return "fake" }

func (f *fakeCompletionClient) Complete(_ context.Context, _, userPrompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, userPrompt)
	return f.reply, f.err
}

func (f *fakeCompletionClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSummaryRepository struct {
	mu        sync.Mutex
	createErr error
	findErr   error
	records   []*domain.ContentSummary
	creates   int
}

func (f *fakeSummaryRepository) Create(_ context.Context, s *domain.ContentSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	s.ID = uuid.New().String()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	stored := *s
	f.records = append(f.records, &stored)
	return nil
}

func (f *fakeSummaryRepository) FindByID(_ context.Context, id string) (*domain.ContentSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeSummaryRepository) FindByUserID(_ context.Context, userID string, sourceType *domain.SourceType, limit, offset int) ([]*domain.ContentSummary, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, 0, f.findErr
	}

	var matched []*domain.ContentSummary
	for _, r := range f.records {
		if r.UserID != userID {
			continue
		}
		if sourceType != nil && r.SourceType != *sourceType {
			continue
		}
		matched = append(matched, r)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeSummaryRepository) Records() []*domain.ContentSummary {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.ContentSummary(nil), f.records...)
}
