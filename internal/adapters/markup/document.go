// Package markup builds and serializes the Sportscode timeline XML.
package markup

import (
	"encoding/xml"

	"github.com/okian/clipmark/internal/domain/model"
	"github.com/okian/clipmark/internal/domain/timecode"
)

// Document is the <file> root of a timeline export.
type Document struct {
	XMLName   xml.Name  `xml:"file"`
	Instances Instances `xml:"ALL_INSTANCES"`
	Rows      Rows      `xml:"ROWS"`
}

// Instances wraps the event list so the section is written even when empty.
type Instances struct {
	Items []Instance `xml:"instance"`
}

// Instance is a single clip on the timeline.
type Instance struct {
	ID     int     `xml:"ID"`
	Start  string  `xml:"start"`
	End    string  `xml:"end"`
	Code   string  `xml:"code"`
	Labels []Label `xml:"label"`
}

// Label is a group/text annotation on an instance.
type Label struct {
	Group string `xml:"group"`
	Text  string `xml:"text"`
}

// Rows wraps the palette list so the section is written even when empty.
type Rows struct {
	Items []Row `xml:"row"`
}

// Row gives the color of one code, in 16-bit channels.
type Row struct {
	Code string `xml:"code"`
	R    uint16 `xml:"R"`
	G    uint16 `xml:"G"`
	B    uint16 `xml:"B"`
}

// Build assembles the document, preserving the order of events and palette.
func Build(events []model.Event, palette []model.PaletteEntry) Document {
	doc := Document{
		Instances: Instances{Items: make([]Instance, 0, len(events))},
		Rows:      Rows{Items: make([]Row, 0, len(palette))},
	}
	for _, ev := range events {
		inst := Instance{
			ID:    ev.ID,
			Start: timecode.Format(ev.Window.Start),
			End:   timecode.Format(ev.Window.End),
			Code:  ev.Code,
		}
		for _, l := range ev.Labels {
			inst.Labels = append(inst.Labels, Label{Group: l.Group, Text: l.Text})
		}
		doc.Instances.Items = append(doc.Instances.Items, inst)
	}
	for _, p := range palette {
		doc.Rows.Items = append(doc.Rows.Items, Row{
			Code: p.Code,
			R:    p.Color.R,
			G:    p.Color.G,
			B:    p.Color.B,
		})
	}
	return doc
}
