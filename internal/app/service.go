// Package service runs conversion pipelines for the HTTP API and the CLI.
// Every call is an isolated run: nothing is cached or shared between
// requests beyond the configured defaults and counters.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/clipmark/internal/adapters/markup"
	"github.com/okian/clipmark/internal/domain/csvnorm"
	"github.com/okian/clipmark/internal/domain/model"
	"github.com/okian/clipmark/internal/domain/timecode"
	"github.com/okian/clipmark/internal/domain/transform"
	"github.com/okian/clipmark/pkg/logger"
	"github.com/okian/clipmark/pkg/metrics"
)

// Defaults are applied to request fields left unset.
type Defaults struct {
	Encoding    string
	FPS         float64
	Pre         float64
	Post        float64
	Offset      string
	StartID     int
	PreviewRows int
}

// Request carries one uploaded file and its conversion parameters. Nil
// pointers and blank strings take the service defaults.
type Request struct {
	Data        []byte
	Encoding    string
	FPS         *float64
	Pre         *float64
	Post        *float64
	Offset      *string
	StartID     *int
	PreviewRows *int          // Inspect only
	Roles       model.RoleMap // partial; missing roles use header defaults
}

// Conversion is the outcome of a successful Convert.
type Conversion struct {
	RunID   string
	XML     []byte
	Events  []model.Event
	Palette []model.PaletteEntry
	Roles   model.RoleMap
	Stats   transform.Stats
}

// Inspection describes an upload before it is converted.
type Inspection struct {
	RunID   string                 `json:"run_id"`
	Header  []string               `json:"header"`
	Rows    int                    `json:"rows"`
	Roles   model.RoleMap          `json:"roles"`
	Preview []transform.PreviewRow `json:"preview"`
}

// Service implements the conversion dependencies of the API and CLI.
type Service struct {
	mu sync.RWMutex

	// Configuration
	defaults    Defaults
	headerNames map[model.Role]string
	indent      bool

	// Counters
	conversions atomic.Int64
	unreadable  atomic.Int64
	invalid     atomic.Int64
	events      atomic.Int64

	inspections     atomic.Int64
	inspectFailures atomic.Int64

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		defaults: Defaults{
			Encoding:    string(csvnorm.UTF8),
			FPS:         transform.DefaultFPS,
			Pre:         transform.DefaultPreSeconds,
			Post:        transform.DefaultPostSeconds,
			Offset:      "0",
			StartID:     transform.DefaultStartID,
			PreviewRows: transform.DefaultPreviewRows,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger = s.logger.Named("service")

	return s
}

// run holds the per-request state shared by Convert and Inspect.
type run struct {
	id     string
	log    logger.Logger
	table  model.Table
	roles  model.RoleMap
	tr     *transform.Transformer
	offset float64
}

// prepare decodes the upload and resolves parameters and roles.
func (s *Service) prepare(req Request) (*run, error) {
	id := uuid.NewString()
	r := &run{id: id, log: s.logger.With(logger.String("run_id", id))}

	name := req.Encoding
	if name == "" {
		name = s.defaults.Encoding
	}
	enc, err := csvnorm.ParseEncoding(name)
	if err != nil {
		return r, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	r.table = csvnorm.Normalize(req.Data, enc)
	if r.table.Empty() {
		return r, ErrUnreadable
	}

	r.roles = model.DefaultRoleMap(r.table.Header, s.headerNames).Merge(req.Roles)
	if err := r.roles.Validate(r.table.Header); err != nil {
		return r, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	offsetText := s.defaults.Offset
	if req.Offset != nil {
		offsetText = *req.Offset
	}
	r.offset = timecode.ParseOffset(offsetText)

	r.tr, err = transform.New(
		transform.WithFPS(floatOr(req.FPS, s.defaults.FPS)),
		transform.WithPadding(floatOr(req.Pre, s.defaults.Pre), floatOr(req.Post, s.defaults.Post)),
		transform.WithOffset(r.offset),
		transform.WithStartID(intOr(req.StartID, s.defaults.StartID)),
		transform.WithLogger(r.log),
	)
	if err != nil {
		return r, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return r, nil
}

// Convert runs the full pipeline on one upload and returns the XML export.
func (s *Service) Convert(ctx context.Context, req Request) (*Conversion, error) {
	start := time.Now()
	metrics.RecordInputBytes(len(req.Data))

	r, err := s.prepare(req)
	if err != nil {
		s.failConversion(ctx, r.log, err)
		return nil, err
	}

	res, err := r.tr.Transform(ctx, r.table, r.roles)
	if err != nil {
		s.failConversion(ctx, r.log, err)
		return nil, err
	}

	var opts []markup.Option
	if s.isIndented() {
		opts = append(opts, markup.WithIndent("", "  "))
	}
	out, err := markup.Marshal(markup.Build(res.Events, res.Palette), opts...)
	if err != nil {
		s.failConversion(ctx, r.log, err)
		return nil, err
	}

	s.conversions.Add(1)
	s.events.Add(int64(res.Stats.Emitted))
	metrics.RecordConversion(metrics.OutcomeSuccess)
	metrics.RecordRows(res.Stats.Rows, res.Stats.Emitted, res.Stats.Skipped, res.Stats.Defaulted)
	metrics.RecordPaletteSize(len(res.Palette))
	metrics.RecordConversionLatency(float64(time.Since(start).Microseconds()) / 1000)

	r.log.Info(ctx, "conversion finished",
		logger.Int("rows", res.Stats.Rows),
		logger.Int("events", res.Stats.Emitted),
		logger.Int("skipped", res.Stats.Skipped),
		logger.Int("defaulted_cells", res.Stats.Defaulted),
		logger.Int("codes", len(res.Palette)),
		logger.Float64("offset_s", r.offset),
	)

	return &Conversion{
		RunID:   r.id,
		XML:     out,
		Events:  res.Events,
		Palette: res.Palette,
		Roles:   r.roles,
		Stats:   res.Stats,
	}, nil
}

// Inspect reports the parsed header, resolved roles and a time preview.
func (s *Service) Inspect(ctx context.Context, req Request) (*Inspection, error) {
	r, err := s.prepare(req)
	if err != nil {
		s.failInspection(ctx, r.log, err)
		return nil, err
	}

	n := intOr(req.PreviewRows, s.defaults.PreviewRows)
	if n < 0 {
		n = s.defaults.PreviewRows
	}
	preview, err := r.tr.Preview(r.table, r.roles, n)
	if err != nil {
		s.failInspection(ctx, r.log, err)
		return nil, err
	}

	s.inspections.Add(1)
	metrics.RecordInspection(metrics.OutcomeSuccess)

	r.log.Debug(ctx, "upload inspected",
		logger.Int("columns", len(r.table.Header)),
		logger.Int("rows", len(r.table.Rows)),
	)

	return &Inspection{
		RunID:   r.id,
		Header:  r.table.Header,
		Rows:    len(r.table.Rows),
		Roles:   r.roles,
		Preview: preview,
	}, nil
}

// failConversion counts and logs a rejected conversion.
func (s *Service) failConversion(ctx context.Context, log logger.Logger, err error) {
	outcome := classify(ctx, log, "conversion", err)
	switch outcome {
	case metrics.OutcomeUnreadable:
		s.unreadable.Add(1)
	case metrics.OutcomeInvalid:
		s.invalid.Add(1)
	}
	metrics.RecordConversion(outcome)
}

// failInspection counts a rejected inspection apart from conversions.
func (s *Service) failInspection(ctx context.Context, log logger.Logger, err error) {
	s.inspectFailures.Add(1)
	metrics.RecordInspection(classify(ctx, log, "inspection", err))
}

// classify logs err and returns its outcome label.
func classify(ctx context.Context, log logger.Logger, kind string, err error) string {
	switch {
	case errors.Is(err, ErrUnreadable):
		log.Warn(ctx, "upload unreadable", logger.String("kind", kind), logger.Error(err))
		return metrics.OutcomeUnreadable
	case errors.Is(err, ErrInvalidRequest):
		log.Warn(ctx, kind+" rejected", logger.Error(err))
		return metrics.OutcomeInvalid
	default:
		log.Error(ctx, kind+" failed", logger.Error(err))
		return metrics.OutcomeFailed
	}
}

// Defaults returns the parameters applied to unset request fields.
func (s *Service) Defaults() Defaults {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults
}

func (s *Service) isIndented() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indent
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	d := s.Defaults()
	return map[string]interface{}{
		"conversions":   s.conversions.Load(),
		"unreadable":    s.unreadable.Load(),
		"invalid":       s.invalid.Load(),
		"eventsEmitted": s.events.Load(),
		"inspections":   s.inspections.Load(),
		"inspectFailed": s.inspectFailures.Load(),
		"defaults": map[string]interface{}{
			"encoding": d.Encoding,
			"fps":      d.FPS,
			"pre":      d.Pre,
			"post":     d.Post,
			"offset":   d.Offset,
			"startId":  d.StartID,
		},
	}
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
