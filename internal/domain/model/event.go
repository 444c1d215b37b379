// Package model contains domain models passed between layers.
package model

// TimeWindow is the clip window cut around a single logged event, in seconds.
type TimeWindow struct {
	Anchor float64 // nominal event time from the minute/second/frame cells
	Start  float64 // clamped to zero
	End    float64
}

// Label is a descriptive (group, text) pair attached to an event.
type Label struct {
	Group string
	Text  string
}

// Event is one emitted timeline instance.
type Event struct {
	ID     int
	Window TimeWindow
	Code   string
	Labels []Label // fixed group order, empty texts omitted
}

// RGB16 holds a color in the 16-bit-per-channel depth the markup expects.
type RGB16 struct {
	R uint16
	G uint16
	B uint16
}

// PaletteEntry associates an event code with its timeline color.
type PaletteEntry struct {
	Code  string
	Color RGB16
}
