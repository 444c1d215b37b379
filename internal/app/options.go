package service

import (
	"github.com/okian/clipmark/internal/domain/model"
	"github.com/okian/clipmark/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEncoding sets the encoding used when a request names none.
func WithEncoding(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.defaults.Encoding = name
		}
	}
}

// WithFPS sets the default frame rate.
func WithFPS(fps float64) Option {
	return func(s *Service) {
		if fps > 0 {
			s.defaults.FPS = fps
		}
	}
}

// WithPadding sets the default pre/post seconds.
func WithPadding(pre, post float64) Option {
	return func(s *Service) {
		if pre >= 0 && post >= 0 {
			s.defaults.Pre = pre
			s.defaults.Post = post
		}
	}
}

// WithOffset sets the default global offset expression.
func WithOffset(offset string) Option {
	return func(s *Service) {
		s.defaults.Offset = offset
	}
}

// WithStartID sets the default id of the first instance.
func WithStartID(id int) Option {
	return func(s *Service) {
		if id > 0 {
			s.defaults.StartID = id
		}
	}
}

// WithPreviewRows sets how many rows Inspect previews by default.
func WithPreviewRows(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.defaults.PreviewRows = n
		}
	}
}

// WithIndent pretty-prints exported XML.
func WithIndent(indent bool) Option {
	return func(s *Service) {
		s.indent = indent
	}
}

// WithHeaderNames overrides the conventional header each role defaults to.
func WithHeaderNames(names map[model.Role]string) Option {
	return func(s *Service) {
		s.headerNames = names
	}
}
