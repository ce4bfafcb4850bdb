package usecase

import (
	"testing"

	"pulse-backend/internal/summary/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchWorker_ProcessesQueuedItems(t *testing.T) {
	uc, client, repo := newTestUsecase(`{"summary":"s","priorityScore":5,"isUrgent":false}`, nil)
	worker := NewBatchWorker(uc, 2, 10)
	worker.Start()

	items := []SummarizeInput{
		{UserID: "u1", SourceType: domain.SourceEmail, Content: "one"},
		{UserID: "u1", SourceType: domain.SourceSlack, Content: "two"},
		{UserID: "u1", SourceType: domain.SourceCalendar, Content: "  "},
		{UserID: "u1", SourceType: "fax", Content: "four"},
	}
	queued, dropped := worker.QueueBatch(items)
	worker.Stop()

	assert.Equal(t, 2, queued)
	assert.Equal(t, 2, dropped)
	assert.Equal(t, 2, client.Calls())
	assert.Len(t, repo.Records(), 2)
}

func TestBatchWorker_DropsWhenQueueFull(t *testing.T) {
	uc, _, _ := newTestUsecase(`{"summary":"s"}`, nil)
	worker := NewBatchWorker(uc, 1, 1)

	item := SummarizeInput{UserID: "u1", SourceType: domain.SourceMessage, Content: "hi"}
	require.True(t, worker.QueueJob(item))
	assert.False(t, worker.QueueJob(item))

	worker.Start()
	worker.Stop()
}

func TestBatchWorker_RejectsAfterStop(t *testing.T) {
	uc, client, _ := newTestUsecase(`{"summary":"s"}`, nil)
	worker := NewBatchWorker(uc, 1, 5)
	worker.Start()
	worker.Stop()
	worker.Stop()

	assert.False(t, worker.QueueJob(SummarizeInput{UserID: "u1", SourceType: domain.SourceEmail, Content: "late"}))
	assert.Equal(t, 0, client.Calls())
}

func TestBatchWorker_FailedItemsDoNotStopOthers(t *testing.T) {
	uc, client, repo := newTestUsecase(`{"summary":"s"}`, nil)
	repo.createErr = assert.AnError
	worker := NewBatchWorker(uc, 1, 5)
	worker.Start()

	queued, _ := worker.QueueBatch([]SummarizeInput{
		{UserID: "u1", SourceType: domain.SourceEmail, Content: "a"},
		{UserID: "u1", SourceType: domain.SourceEmail, Content: "b"},
	})
	worker.Stop()

	assert.Equal(t, 2, queued)
	assert.Equal(t, 2, client.Calls())
}
