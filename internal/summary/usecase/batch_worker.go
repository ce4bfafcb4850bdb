package usecase

import (
	"context"
	"log/slog"
	"sync"

	"pulse-backend/pkg/logger"
)

// BatchWorker summarizes queued content in the background.
// Each job runs the same flow as SummarizeContent, independently of the others.
type BatchWorker struct {
	summaryUc   SummaryUsecase
	jobQueue    chan SummarizeInput
	workerWg    sync.WaitGroup
	workerCount int
	started     bool
	stopped     bool
	mu          sync.RWMutex
	log         *slog.Logger
}

// NewBatchWorker creates a worker pool with a bounded queue
func NewBatchWorker(summaryUc SummaryUsecase, workerCount, queueSize int) *BatchWorker {
	if workerCount <= 0 {
		workerCount = 3
	}
	if queueSize <= 0 {
		queueSize = 500
	}

	return &BatchWorker{
		summaryUc:   summaryUc,
		jobQueue:    make(chan SummarizeInput, queueSize),
		workerCount: workerCount,
		log:         logger.NewModuleLogger("summary", "batch_worker"),
	}
}

// Start starts the workers. Calling it twice is a no-op.
func (w *BatchWorker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started || w.stopped {
		return
	}

	for i := 0; i < w.workerCount; i++ {
		w.workerWg.Add(1)
		go w.worker(i)
	}
	w.started = true
	w.log.Info("batch workers started", slog.Int("workers", w.workerCount))
}

// Stop drains the queue and waits for in-flight jobs
func (w *BatchWorker) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.jobQueue)
	w.mu.Unlock()

	w.workerWg.Wait()
	w.log.Info("batch workers stopped")
}

func (w *BatchWorker) worker(id int) {
	defer w.workerWg.Done()

	for job := range w.jobQueue {
		w.processJob(job)
	}

	w.log.Debug("worker stopped", slog.Int("worker", id))
}

func (w *BatchWorker) processJob(job SummarizeInput) {
	// Failures are already logged with stage and user by the usecase.
	if _, err := w.summaryUc.SummarizeContent(context.Background(), job); err != nil {
		w.log.Warn("batch item failed",
			slog.String("user_id", job.UserID),
			slog.String("source_type", string(job.SourceType)),
		)
	}
}

// QueueJob adds a single job to the queue (non-blocking).
// It returns false when the queue is full or the worker is stopped.
func (w *BatchWorker) QueueJob(job SummarizeInput) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		return false
	}

	select {
	case w.jobQueue <- job:
		return true
	default:
		return false
	}
}

// QueueBatch validates and queues every item. Invalid items and items that
// do not fit in the queue are counted as dropped.
func (w *BatchWorker) QueueBatch(items []SummarizeInput) (queued, dropped int) {
	for _, item := range items {
		if err := Validate(item); err != nil {
			dropped++
			continue
		}
		if w.QueueJob(item) {
			queued++
		} else {
			dropped++
		}
	}
	if dropped > 0 {
		w.log.Warn("batch items dropped", slog.Int("queued", queued), slog.Int("dropped", dropped))
	}
	return queued, dropped
}
