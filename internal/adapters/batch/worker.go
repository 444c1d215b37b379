package batch

import (
	"context"
	"time"

	"github.com/okian/clipmark/pkg/logger"
	"github.com/okian/clipmark/pkg/metrics"
)

// Handler converts the file behind one job.
type Handler interface {
	Handle(ctx context.Context, job Job) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, job Job) error

// Handle calls f(ctx, job).
func (f HandlerFunc) Handle(ctx context.Context, job Job) error { return f(ctx, job) }

// Result is the outcome of one job.
type Result struct {
	Job      Job
	Err      error
	Duration time.Duration
}

// worker drains jobs from the queue and records each result in its slot.
type worker struct {
	name    string
	queue   *Queue
	handler Handler
	logger  logger.Logger
}

func (w *worker) run(ctx context.Context, results []Result) {
	metrics.AddBatchActiveWorkers(1)
	defer metrics.AddBatchActiveWorkers(-1)

	for job := range w.queue.Dequeue(ctx) {
		results[job.Index] = w.process(ctx, job)
	}
}

func (w *worker) process(ctx context.Context, job Job) Result {
	start := time.Now()
	err := w.handler.Handle(ctx, job)
	res := Result{Job: job, Err: err, Duration: time.Since(start)}

	if err != nil {
		metrics.RecordBatchJob(metrics.OutcomeFailed)
		w.logger.Error(ctx, "job failed",
			logger.String("input", job.Name),
			logger.Error(err),
		)
		return res
	}
	metrics.RecordBatchJob(metrics.OutcomeSuccess)
	w.logger.Debug(ctx, "job done",
		logger.String("input", job.Name),
		logger.Int("elapsed_ms", int(res.Duration.Milliseconds())),
	)
	return res
}
