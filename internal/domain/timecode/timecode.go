// Package timecode converts between human time notations and seconds, and
// computes clip windows around logged events.
package timecode

import (
	"math"
	"strconv"
	"strings"

	"github.com/okian/clipmark/internal/domain/model"
)

const (
	secondsPerMinute = 60
	formatPrecision  = 3
)

// ParseHMS parses "S", "M:S" or "H:M:S" into seconds. Blank input, a
// non-numeric part or more than three parts report ok=false.
func ParseHMS(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	parts := strings.Split(text, ":")
	if len(parts) > 3 {
		return 0, false
	}
	total := 0.0
	for _, p := range parts {
		v, ok := parseFloat(p)
		if !ok {
			return 0, false
		}
		total = total*secondsPerMinute + v
	}
	return total, true
}

// ParseOffset reads a global offset given either as bare seconds or in
// H:M:S / M:S notation. Anything unparseable is a zero offset.
func ParseOffset(text string) float64 {
	if v, ok := parseFloat(text); ok {
		return v
	}
	if v, ok := ParseHMS(text); ok {
		return v
	}
	return 0
}

// ParseNumber reads a numeric cell, treating anything unparseable as zero.
func ParseNumber(text string) float64 {
	v, _ := Number(text)
	return v
}

// Number parses a finite number with surrounding whitespace ignored.
func Number(text string) (float64, bool) {
	return parseFloat(text)
}

// Anchor is the nominal event time: minutes*60 + seconds + frames/fps.
// fps must be positive.
func Anchor(minutes, seconds, frames, fps float64) float64 {
	return minutes*secondsPerMinute + seconds + frames/fps
}

// Window shifts anchor by offset and pads it, clamping the start at zero.
func Window(anchor, offset, pre, post float64) model.TimeWindow {
	shifted := anchor + offset
	return model.TimeWindow{
		Anchor: anchor,
		Start:  math.Max(0, shifted-pre),
		End:    shifted + post,
	}
}

// Format renders seconds with millisecond precision and no trailing zeros:
// 12.500 -> "12.5", 12.000 -> "12".
func Format(seconds float64) string {
	s := strconv.FormatFloat(seconds, 'f', formatPrecision, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Round3 rounds to millisecond precision for previews.
func Round3(seconds float64) float64 {
	return math.Round(seconds*1000) / 1000
}

func parseFloat(text string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
