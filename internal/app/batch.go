package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/okian/lungrisk/internal/adapters/mq/queue"
	"github.com/okian/lungrisk/internal/adapters/mq/worker"
	"github.com/okian/lungrisk/internal/domain/model"
	"github.com/okian/lungrisk/internal/domain/scoring"
	"github.com/okian/lungrisk/pkg/logger"
	"github.com/okian/lungrisk/pkg/metrics"
)

const (
	defaultMaxBatch      = 100
	batchShutdownTimeout = 5 * time.Second
)

// Batch errors.
var (
	ErrEmptyBatch    = errors.New("batch is empty")
	ErrBatchTooLarge = errors.New("batch too large")
)

// Outcome labels for batch items.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
)

// BatchItem is the result for one questionnaire of a batch. Exactly one of
// Report and Error is set.
type BatchItem struct {
	Index  int                `json:"index"`
	Report *Report            `json:"report,omitempty"`
	Error  string             `json:"error,omitempty"`
	Fields []model.FieldError `json:"fields,omitempty"`
}

// BatchResult holds items in submission order plus per-category counts.
type BatchResult struct {
	Items   []BatchItem    `json:"items"`
	Summary map[string]int `json:"summary"`
}

// WithWorkers sets how many questionnaires of a batch are scored in
// parallel. Zero or less means one per CPU.
func WithWorkers(n int) Option {
	return func(s *Service) {
		s.workers = n
	}
}

// WithMaxBatch caps the number of questionnaires per batch.
func WithMaxBatch(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBatch = n
		}
	}
}

// MaxBatch returns the configured batch cap.
func (s *Service) MaxBatch() int { return s.maxBatch }

// AssessBatch scores every questionnaire independently on a worker pool.
// Invalid items are reported in place and do not fail the batch.
func (s *Service) AssessBatch(ctx context.Context, inputs []model.UserInputs) (BatchResult, error) {
	switch {
	case len(inputs) == 0:
		return BatchResult{}, ErrEmptyBatch
	case len(inputs) > s.maxBatch:
		return BatchResult{}, fmt.Errorf("%w: %d items, limit %d", ErrBatchTooLarge, len(inputs), s.maxBatch)
	}
	if err := ctx.Err(); err != nil {
		return BatchResult{}, fmt.Errorf("context cancelled: %w", err)
	}
	metrics.RecordBatchSize(len(inputs))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	q := queue.NewInMemoryQueue(queue.WithCapacity(len(inputs)))
	for i, in := range inputs {
		if err := q.Enqueue(ctx, queue.Job{Index: i, Inputs: in}); err != nil {
			return BatchResult{}, fmt.Errorf("enqueue item %d: %w", i, err)
		}
	}
	_ = q.Close()

	// each index is written by exactly one worker
	items := make([]BatchItem, len(inputs))
	pool := worker.NewPool(min(s.workerCount(), len(inputs)), q, func(ctx context.Context, j queue.Job) {
		items[j.Index] = s.assessItem(ctx, j)
	}, worker.WithLogger(s.logger))
	pool.Start(ctx)

	finished := make(chan struct{})
	go func() {
		pool.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-ctx.Done():
		// stop workers after their current job; the pool logs overruns
		stopCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), batchShutdownTimeout)
		_ = pool.Shutdown(stopCtx)
		stop()
	}
	if err := ctx.Err(); err != nil {
		return BatchResult{}, fmt.Errorf("context cancelled: %w", err)
	}

	result := BatchResult{Items: items, Summary: summarize(items)}
	s.logger.Debug(ctx, "batch completed",
		logger.Int("items", len(items)),
		logger.Int("rejected", result.Summary[OutcomeRejected]),
		logger.Int("workers", pool.Size()),
	)
	return result, nil
}

func (s *Service) assessItem(ctx context.Context, j queue.Job) BatchItem {
	item := BatchItem{Index: j.Index}
	report, err := s.Assess(ctx, j.Inputs)
	if err != nil {
		metrics.RecordBatchJob(OutcomeRejected)
		item.Error = err.Error()
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			item.Fields = verr.Fields
		}
		return item
	}
	metrics.RecordBatchJob(OutcomeOK)
	item.Report = &report
	return item
}

func (s *Service) workerCount() int {
	if s.workers > 0 {
		return s.workers
	}
	return runtime.NumCPU()
}

func summarize(items []BatchItem) map[string]int {
	summary := make(map[string]int, len(scoring.Categories())+1)
	for _, c := range scoring.Categories() {
		summary[string(c)] = 0
	}
	summary[OutcomeRejected] = 0
	for _, it := range items {
		if it.Report == nil {
			summary[OutcomeRejected]++
			continue
		}
		summary[string(it.Report.Breakdown.Category)]++
	}
	return summary
}
