// Package worker drains batch queues with a fixed pool of goroutines.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"github.com/okian/lungrisk/internal/adapters/mq/queue"
	"github.com/okian/lungrisk/pkg/logger"
	"github.com/okian/lungrisk/pkg/metrics"
)

// Processor handles one job. It must be safe for concurrent use.
type Processor func(ctx context.Context, j queue.Job)

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Worker consumes jobs until its queue is drained or it is stopped.
type Worker struct {
	queue   Queue
	process Processor
	name    string
	logger  logger.Logger

	shutdown chan struct{}
	done     chan struct{}
	once     sync.Once
}

// New creates a worker reading from q.
func New(q Queue, process Processor, opts ...Option) *Worker {
	w := &Worker{
		queue:    q,
		process:  process,
		name:     "worker",
		logger:   logger.Nop(),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run processes jobs until the queue is closed and drained, ctx is done or
// Shutdown is called.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)
	metrics.AddWorkersActive(1)
	defer metrics.AddWorkersActive(-1)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			w.process(ctx, j)
		}
	}
}

// Done is closed once Run has returned.
func (w *Worker) Done() <-chan struct{} { return w.done }

// Shutdown stops the worker after its current job.
func (w *Worker) Shutdown(ctx context.Context) error {
	w.once.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out", logger.String("worker", w.name))
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Pool runs a fixed number of workers against one queue.
type Pool struct {
	workers []*Worker
	logger  logger.Logger
}

// NewPool creates count workers; count < 1 means one per CPU.
func NewPool(count int, q Queue, process Processor, opts ...Option) *Pool {
	if count < 1 {
		count = runtime.NumCPU()
	}

	p := &Pool{workers: make([]*Worker, count), logger: logger.Nop()}
	for i := range p.workers {
		wopts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		p.workers[i] = New(q, process, wopts...)
	}
	p.logger = p.workers[0].logger
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start launches every worker.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Wait blocks until every started worker has returned.
func (p *Pool) Wait() {
	for _, w := range p.workers {
		<-w.Done()
	}
}

// Shutdown stops all workers, waiting at most until ctx is done.
func (p *Pool) Shutdown(ctx context.Context) error {
	var firstErr error
	for _, w := range p.workers {
		if err := w.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		p.logger.Warn(ctx, "pool shutdown incomplete", logger.Error(firstErr))
	}
	return firstErr
}
