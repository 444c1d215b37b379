// Package transform turns normalized CSV rows into timeline events and the
// per-code color palette.
package transform

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/okian/clipmark/internal/domain/color"
	"github.com/okian/clipmark/internal/domain/model"
	"github.com/okian/clipmark/internal/domain/timecode"
	"github.com/okian/clipmark/pkg/logger"
)

// Transformer holds the time parameters of one conversion run.
type Transformer struct {
	fps     float64
	pre     float64
	post    float64
	offset  float64
	startID int

	logger logger.Logger
}

// Stats summarizes a transform pass.
type Stats struct {
	Rows      int // data rows read
	Emitted   int // events produced
	Skipped   int // rows dropped for an empty code
	Defaulted int // non-blank time cells read as zero
}

// Result is the ordered output of a transform pass.
type Result struct {
	Events  []model.Event
	Palette []model.PaletteEntry // first-seen code order
	Stats   Stats
}

// New builds a Transformer, validating the configured parameters.
func New(opts ...Option) (*Transformer, error) {
	t := &Transformer{
		fps:     DefaultFPS,
		pre:     DefaultPreSeconds,
		post:    DefaultPostSeconds,
		startID: DefaultStartID,
	}

	for _, opt := range opts {
		opt(t)
	}

	switch {
	case !(t.fps > 0) || math.IsInf(t.fps, 0):
		return nil, fmt.Errorf("%w: fps must be positive, got %v", ErrInvalidOption, t.fps)
	case !(t.pre >= 0) || math.IsInf(t.pre, 0):
		return nil, fmt.Errorf("%w: pre must be non-negative, got %v", ErrInvalidOption, t.pre)
	case !(t.post >= 0) || math.IsInf(t.post, 0):
		return nil, fmt.Errorf("%w: post must be non-negative, got %v", ErrInvalidOption, t.post)
	case math.IsNaN(t.offset) || math.IsInf(t.offset, 0):
		return nil, fmt.Errorf("%w: offset must be finite", ErrInvalidOption)
	case t.startID < 1:
		return nil, fmt.Errorf("%w: start id must be at least 1, got %d", ErrInvalidOption, t.startID)
	}
	return t, nil
}

// Transform walks the rows in table order. Rows whose code is blank are
// skipped and consume no id; the first row carrying a code fixes its color.
func (t *Transformer) Transform(ctx context.Context, table model.Table, roles model.RoleMap) (*Result, error) {
	cols, err := resolve(table, roles)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Events:  make([]model.Event, 0, len(table.Rows)),
		Palette: []model.PaletteEntry{},
	}
	seen := make(map[string]struct{})
	nextID := t.startID

	for i, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("transform interrupted at row %d: %w", i, err)
		}
		res.Stats.Rows++

		code := strings.TrimSpace(cell(row, cols.code))
		if code == "" {
			res.Stats.Skipped++
			continue
		}

		mins := t.number(ctx, &res.Stats, i, model.RoleMins, cell(row, cols.mins))
		secs := t.number(ctx, &res.Stats, i, model.RoleSecs, cell(row, cols.secs))
		frames := t.number(ctx, &res.Stats, i, model.RoleFrames, cell(row, cols.frames))

		anchor := timecode.Anchor(mins, secs, frames, t.fps)
		res.Events = append(res.Events, model.Event{
			ID:     nextID,
			Window: timecode.Window(anchor, t.offset, t.pre, t.post),
			Code:   code,
			Labels: labels(row, cols),
		})
		nextID++

		if _, ok := seen[code]; !ok {
			seen[code] = struct{}{}
			res.Palette = append(res.Palette, model.PaletteEntry{
				Code:  code,
				Color: color.HexToChannels(cell(row, cols.colormark)),
			})
		}
	}

	res.Stats.Emitted = len(res.Events)
	return res, nil
}

// number parses a time cell leniently; malformed values count as zero.
func (t *Transformer) number(ctx context.Context, st *Stats, row int, role model.Role, value string) float64 {
	v, ok := timecode.Number(value)
	if !ok && strings.TrimSpace(value) != "" {
		st.Defaulted++
		if t.logger != nil {
			t.logger.Debug(ctx, "time cell read as zero",
				logger.Int("row", row),
				logger.String("role", string(role)),
				logger.String("value", value),
			)
		}
	}
	return v
}

func labels(row []string, cols columns) []model.Label {
	var out []model.Label
	for _, g := range model.LabelGroups {
		text := strings.TrimSpace(cell(row, cols.byRole[g.Role]))
		if text == "" {
			continue
		}
		out = append(out, model.Label{Group: g.Group, Text: text})
	}
	return out
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// columns caches role positions for the current header.
type columns struct {
	mins, secs, frames, code, colormark int
	byRole                              map[model.Role]int
}

func resolve(table model.Table, roles model.RoleMap) (columns, error) {
	if err := roles.Validate(table.Header); err != nil {
		return columns{}, err
	}
	byRole := make(map[model.Role]int, len(model.Roles))
	for _, role := range model.Roles {
		byRole[role] = table.ColumnIndex(roles[role])
	}
	return columns{
		mins:      byRole[model.RoleMins],
		secs:      byRole[model.RoleSecs],
		frames:    byRole[model.RoleFrames],
		code:      byRole[model.RoleCode],
		colormark: byRole[model.RoleColormark],
		byRole:    byRole,
	}, nil
}
