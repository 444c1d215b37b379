package batch

import (
	"github.com/okian/clipmark/pkg/logger"
)

// QueueOption applies a configuration option to the Queue.
type QueueOption func(*Queue)

// WithCapacity sets the maximum number of pending jobs.
func WithCapacity(capacity int) QueueOption {
	return func(q *Queue) {
		if capacity > 0 {
			q.capacity = capacity
		}
	}
}

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithWorkers sets how many files are converted concurrently.
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLogger sets a custom logger for the pool and its workers.
func WithLogger(logger logger.Logger) Option {
	return func(p *Pool) {
		if logger != nil {
			p.logger = logger
		}
	}
}
