// Package cli implements the clipmark command line: flag parsing, preview
// tables and batch conversion of CSV files to timeline XML.
package cli

import (
	"context"
	"time"

	service "github.com/okian/clipmark/internal/app"
)

// Config holds the parsed command line.
type Config struct {
	Inputs   []string // CSV files to convert
	OutDir   string   // destination directory, "-" for stdout
	Mapping  string   // role-map YAML profile
	Preview  int      // rows to preview instead of converting; negative converts
	Workers  int      // concurrent conversions
	LogLevel string
	Help     bool

	// Conversion defaults handed to the service.
	Encoding string
	FPS      float64
	Pre      float64
	Post     float64
	Offset   string
	StartID  int
	Indent   bool
}

// Converter runs one conversion or inspection.
type Converter interface {
	Convert(ctx context.Context, req service.Request) (*service.Conversion, error)
	Inspect(ctx context.Context, req service.Request) (*service.Inspection, error)
}

// Stats summarizes a batch run.
type Stats struct {
	Files     int
	Converted int
	Failed    int
	Events    int
	Skipped   int
	Duration  time.Duration
}
