package transform

import "github.com/okian/clipmark/pkg/logger"

// Default transform configuration constants.
const (
	DefaultFPS         = 25.0
	DefaultPreSeconds  = 15.0
	DefaultPostSeconds = 15.0
	DefaultStartID     = 1
)

// Option applies a configuration option to the Transformer.
type Option func(*Transformer)

// WithFPS sets the frame rate used to convert the frames cell to seconds.
func WithFPS(fps float64) Option {
	return func(t *Transformer) {
		t.fps = fps
	}
}

// WithPadding sets the seconds kept before and after each event.
func WithPadding(pre, post float64) Option {
	return func(t *Transformer) {
		t.pre = pre
		t.post = post
	}
}

// WithOffset sets the global shift applied to every anchor.
func WithOffset(seconds float64) Option {
	return func(t *Transformer) {
		t.offset = seconds
	}
}

// WithStartID sets the id given to the first emitted event.
func WithStartID(id int) Option {
	return func(t *Transformer) {
		t.startID = id
	}
}

// WithLogger enables debug logging of per-row decisions.
func WithLogger(l logger.Logger) Option {
	return func(t *Transformer) {
		if l != nil {
			t.logger = l
		}
	}
}
