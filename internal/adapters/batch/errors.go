package batch

import "errors"

// Sentinel kinds for batch errors.
var (
	ErrQueueFull   = errors.New("batch queue full")
	ErrQueueClosed = errors.New("batch queue closed")
	ErrStopped     = errors.New("job not run: batch stopped")
)
