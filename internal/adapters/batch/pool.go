package batch

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"github.com/okian/clipmark/pkg/logger"
)

// Pool runs a batch of jobs on a fixed number of workers.
type Pool struct {
	workers int
	handler Handler
	logger  logger.Logger
}

// NewPool creates a pool. Without WithWorkers it uses one worker per CPU.
func NewPool(handler Handler, opts ...Option) *Pool {
	p := &Pool{
		workers: runtime.NumCPU(),
		handler: handler,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get()
	}
	p.logger = p.logger.Named("batch")
	return p
}

// Run converts every named input and returns one result per input, in input
// order. Jobs left in the queue when ctx is cancelled report ErrStopped.
func (p *Pool) Run(ctx context.Context, names []string) ([]Result, error) {
	results := make([]Result, len(names))
	if len(names) == 0 {
		return results, nil
	}

	q := NewQueue(WithCapacity(len(names)))
	for i, name := range names {
		job := Job{Index: i, Name: name}
		results[i] = Result{Job: job, Err: ErrStopped}
		if err := q.Enqueue(ctx, job); err != nil {
			_ = q.Close()
			return nil, fmt.Errorf("enqueue %s: %w", name, err)
		}
	}
	if err := q.Close(); err != nil {
		return nil, err
	}

	n := p.workers
	if n > len(names) {
		n = len(names)
	}
	p.logger.Info(ctx, "batch started", logger.Int("files", len(names)), logger.Int("workers", n))

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		w := &worker{
			name:    "worker-" + strconv.Itoa(i),
			queue:   q,
			handler: p.handler,
		}
		w.logger = p.logger.Named(w.name)
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.run(ctx, results)
		}()
	}
	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	p.logger.Info(ctx, "batch finished", logger.Int("files", len(names)), logger.Int("failed", failed))
	return results, ctx.Err()
}
