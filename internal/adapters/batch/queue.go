// Package batch converts many files concurrently with a bounded pool of
// workers fed from an in-memory job queue.
package batch

import (
	"context"
	"sync"

	"github.com/okian/clipmark/pkg/metrics"
)

const defaultQueueCapacity = 1024

// Job names one input of a batch. Index is its position in the batch and
// keys the result slice.
type Job struct {
	Index int
	Name  string
}

// Queue is a bounded FIFO of jobs with non-blocking enqueue.
type Queue struct {
	jobs     chan Job
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewQueue creates a queue with configuration options.
func NewQueue(opts ...QueueOption) *Queue {
	q := &Queue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.jobs = make(chan Job, q.capacity)
	metrics.UpdateBatchQueueSize(0)
	return q
}

// Enqueue adds a job. It fails when the queue is closed or full.
func (q *Queue) Enqueue(ctx context.Context, j Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.jobs <- j:
		metrics.UpdateBatchQueueSize(len(q.jobs))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

// Dequeue returns a channel delivering queued jobs. It is closed once the
// queue is closed and drained, or when ctx is done.
func (q *Queue) Dequeue(ctx context.Context) <-chan Job {
	out := make(chan Job)
	go func() {
		defer close(out)
		for j := range q.jobs {
			select {
			case out <- j:
				metrics.UpdateBatchQueueSize(len(q.jobs))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the number of pending jobs.
func (q *Queue) Len() int {
	return len(q.jobs)
}

// Close stops accepting jobs. Pending jobs are still delivered.
func (q *Queue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.jobs)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *Queue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
