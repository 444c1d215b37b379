// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns defaults; Load layers file and env on top.
// - Validate enforces the ranges the conversion pipeline relies on.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"runtime"

	"github.com/okian/clipmark/internal/domain/csvnorm"
	"github.com/okian/clipmark/internal/domain/model"
)

// Default configuration values.
const (
	defaultAddr           = ":9080"
	defaultMaxUploadBytes = 32 << 20
	defaultFPS            = 25.0
	defaultPadding        = 15.0
	defaultPreviewRows    = 12
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxUploadBytes caps the size of a CSV accepted over HTTP.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// Encoding is the default text encoding of uploads: utf-8, utf-8-sig, latin-1.
	Encoding string `koanf:"encoding"`

	// FPS is the default frame rate of the frames column.
	FPS float64 `koanf:"fps"`

	// PreSeconds and PostSeconds pad each clip around its event.
	PreSeconds  float64 `koanf:"pre_seconds"`
	PostSeconds float64 `koanf:"post_seconds"`

	// Offset is the default global shift, in seconds or H:M:S / M:S.
	Offset string `koanf:"offset"`

	// StartID is the id of the first exported instance.
	StartID int `koanf:"start_id"`

	// PreviewRows is how many rows /inspect and the CLI preview show.
	PreviewRows int `koanf:"preview_rows"`

	// BatchWorkers bounds concurrent file conversions in the CLI.
	BatchWorkers int `koanf:"batch_workers"`

	// Indent pretty-prints exported XML.
	Indent bool `koanf:"indent"`

	// HeaderNames overrides the conventional header name a role defaults to,
	// e.g. {"code": "Action"}.
	HeaderNames map[string]string `koanf:"header_names"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           defaultAddr,
		MaxUploadBytes: defaultMaxUploadBytes,
		Encoding:       string(csvnorm.UTF8),
		FPS:            defaultFPS,
		PreSeconds:     defaultPadding,
		PostSeconds:    defaultPadding,
		Offset:         "0",
		StartID:        1,
		PreviewRows:    defaultPreviewRows,
		BatchWorkers:   runtime.NumCPU(),
		HeaderNames:    map[string]string{},
	}
}

// Validate checks the values the pipeline depends on.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxUploadBytes <= 0:
		return fmt.Errorf("%w: max_upload_bytes must be positive", ErrInvalidConfig)
	case !(c.FPS > 0):
		return fmt.Errorf("%w: fps must be positive", ErrInvalidConfig)
	case c.PreSeconds < 0 || c.PostSeconds < 0:
		return fmt.Errorf("%w: pre_seconds and post_seconds must not be negative", ErrInvalidConfig)
	case c.StartID < 1:
		return fmt.Errorf("%w: start_id must be at least 1", ErrInvalidConfig)
	case c.PreviewRows < 0:
		return fmt.Errorf("%w: preview_rows must not be negative", ErrInvalidConfig)
	case c.BatchWorkers < 0:
		return fmt.Errorf("%w: batch_workers must not be negative", ErrInvalidConfig)
	}
	if _, err := csvnorm.ParseEncoding(c.Encoding); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.Headers(); err != nil {
		return err
	}
	return nil
}

// Headers returns HeaderNames keyed by role.
func (c *Config) Headers() (map[model.Role]string, error) {
	out := make(map[model.Role]string, len(c.HeaderNames))
	for name, header := range c.HeaderNames {
		role, err := model.ParseRole(name)
		if err != nil {
			return nil, fmt.Errorf("%w: header_names: %w", ErrInvalidConfig, err)
		}
		out[role] = header
	}
	return out, nil
}
