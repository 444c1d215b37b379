package transform

import (
	"github.com/okian/clipmark/internal/domain/model"
	"github.com/okian/clipmark/internal/domain/timecode"
)

// DefaultPreviewRows is how many rows a preview shows when unspecified.
const DefaultPreviewRows = 12

// PreviewRow shows the computed times for one source row, so a user can
// check the column mapping before exporting.
type PreviewRow struct {
	Code    string  `json:"code"`
	Team    string  `json:"team"`
	Player  string  `json:"player"`
	Outcome string  `json:"outcome"`
	Anchor  float64 `json:"anchor_s"`
	Start   float64 `json:"start_s"`
	End     float64 `json:"end_s"`
}

// Preview computes times for the first n rows. Unlike Transform it keeps
// rows with a blank code so the user sees what would be dropped, and shows
// the text cells as they appear in the file.
func (t *Transformer) Preview(table model.Table, roles model.RoleMap, n int) ([]PreviewRow, error) {
	cols, err := resolve(table, roles)
	if err != nil {
		return nil, err
	}
	if n < 0 || n > len(table.Rows) {
		n = len(table.Rows)
	}

	out := make([]PreviewRow, 0, n)
	for _, row := range table.Rows[:n] {
		anchor := timecode.Anchor(
			timecode.ParseNumber(cell(row, cols.mins)),
			timecode.ParseNumber(cell(row, cols.secs)),
			timecode.ParseNumber(cell(row, cols.frames)),
			t.fps,
		)
		w := timecode.Window(anchor, t.offset, t.pre, t.post)
		out = append(out, PreviewRow{
			Code:    cell(row, cols.code),
			Team:    cell(row, cols.byRole[model.RoleTeam]),
			Player:  cell(row, cols.byRole[model.RolePlayer]),
			Outcome: cell(row, cols.byRole[model.RoleOutcome]),
			Anchor:  timecode.Round3(w.Anchor),
			Start:   timecode.Round3(w.Start),
			End:     timecode.Round3(w.End),
		})
	}
	return out, nil
}
