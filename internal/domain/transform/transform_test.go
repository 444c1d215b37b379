package transform_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/okian/clipmark/internal/domain/model"
	"github.com/okian/clipmark/internal/domain/transform"
	"github.com/smartystreets/goconvey/convey"
)

var header = []string{"Mins", "Secs", "Frames", "Event Name", "Team Name", "Outcome", "Player", "PSR", "Colormark"}

func table(rows ...[]string) model.Table {
	return model.Table{Header: header, Rows: rows}
}

func mustNew(opts ...transform.Option) *transform.Transformer {
	tr, err := transform.New(opts...)
	if err != nil {
		panic(err)
	}
	return tr
}

func TestTransform(t *testing.T) {
	convey.Convey("Given a transformer with default parameters", t, func() {
		ctx := context.Background()
		tr := mustNew()
		roles := model.DefaultRoleMap(header, nil)

		convey.Convey("When a single shot row is transformed", func() {
			res, err := tr.Transform(ctx, table(
				[]string{"2", "5", "12", "Shot", "", "", "", "", "#FF0000"},
			), roles)

			convey.Convey("Then one padded event and one palette entry are produced", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Events, convey.ShouldHaveLength, 1)
				ev := res.Events[0]
				convey.So(ev.ID, convey.ShouldEqual, 1)
				convey.So(ev.Code, convey.ShouldEqual, "Shot")
				convey.So(ev.Window.Anchor, convey.ShouldAlmostEqual, 125.48, 1e-9)
				convey.So(ev.Window.Start, convey.ShouldAlmostEqual, 110.48, 1e-9)
				convey.So(ev.Window.End, convey.ShouldAlmostEqual, 140.48, 1e-9)
				convey.So(ev.Labels, convey.ShouldResemble, []model.Label{{Group: "Colormark", Text: "#FF0000"}})
				convey.So(res.Palette, convey.ShouldResemble, []model.PaletteEntry{
					{Code: "Shot", Color: model.RGB16{R: 65535, G: 0, B: 0}},
				})
			})
		})

		convey.Convey("When some rows have a blank code", func() {
			res, err := tr.Transform(ctx, table(
				[]string{"0", "30", "0", "Pass", "Home", "", "", "", "#00FF00"},
				[]string{"0", "40", "0", "   ", "Home", "", "", "", "#0000FF"},
				[]string{"0", "50", "0", "Shot", "Away", "", "", "", ""},
			), roles)

			convey.Convey("Then they produce nothing and consume no id", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Events, convey.ShouldHaveLength, 2)
				convey.So(res.Events[0].ID, convey.ShouldEqual, 1)
				convey.So(res.Events[1].ID, convey.ShouldEqual, 2)
				convey.So(res.Events[1].Code, convey.ShouldEqual, "Shot")
				convey.So(res.Palette, convey.ShouldHaveLength, 2)
				convey.So(res.Stats, convey.ShouldResemble, transform.Stats{Rows: 3, Emitted: 2, Skipped: 1})
			})

			convey.Convey("And a missing color falls back to gray", func() {
				convey.So(res.Palette[1].Color, convey.ShouldResemble, model.RGB16{R: 0x8080, G: 0x8080, B: 0x8080})
			})
		})

		convey.Convey("When two rows share a code with different colors", func() {
			res, _ := tr.Transform(ctx, table(
				[]string{"1", "0", "0", "Shot", "", "", "", "", "#FF0000"},
				[]string{"2", "0", "0", "Goal", "", "", "", "", "#00FF00"},
				[]string{"3", "0", "0", "Shot", "", "", "", "", "#0000FF"},
			), roles)

			convey.Convey("Then the palette keeps the first color in first-seen order", func() {
				convey.So(res.Events, convey.ShouldHaveLength, 3)
				convey.So(res.Palette, convey.ShouldResemble, []model.PaletteEntry{
					{Code: "Shot", Color: model.RGB16{R: 65535}},
					{Code: "Goal", Color: model.RGB16{G: 65535}},
				})
			})
		})

		convey.Convey("When label cells are partially filled", func() {
			res, _ := tr.Transform(ctx, table(
				[]string{"0", "20", "0", " Shot ", " Home ", "", "Smith", " ", "x"},
			), roles)

			convey.Convey("Then only non-blank labels appear, trimmed, in fixed order", func() {
				convey.So(res.Events[0].Code, convey.ShouldEqual, "Shot")
				convey.So(res.Events[0].Labels, convey.ShouldResemble, []model.Label{
					{Group: "Team in Possession", Text: "Home"},
					{Group: "Player", Text: "Smith"},
					{Group: "Colormark", Text: "x"},
				})
			})
		})

		convey.Convey("When time cells are malformed", func() {
			res, err := tr.Transform(ctx, table(
				[]string{"two", "40", "", "Shot", "", "", "", "", ""},
				[]string{"x", "y", "z", "Goal", "", "", "", "", ""},
			), roles)

			convey.Convey("Then each bad cell is zero and the rows are kept", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Events, convey.ShouldHaveLength, 2)
				convey.So(res.Events[0].Window.Anchor, convey.ShouldEqual, 40.0)
				convey.So(res.Events[0].Window.Start, convey.ShouldEqual, 25.0)
				convey.So(res.Events[1].Window.Anchor, convey.ShouldEqual, 0.0)
				convey.So(res.Events[1].Window.Start, convey.ShouldEqual, 0.0)
				convey.So(res.Events[1].Window.End, convey.ShouldEqual, 15.0)
				convey.So(res.Stats.Defaulted, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When an event sits near zero", func() {
			res, _ := tr.Transform(ctx, table(
				[]string{"0", "10", "0", "Shot", "", "", "", "", ""},
			), roles)

			convey.Convey("Then the start is clamped", func() {
				convey.So(res.Events[0].Window.Start, convey.ShouldEqual, 0.0)
				convey.So(res.Events[0].Window.End, convey.ShouldEqual, 25.0)
			})
		})

		convey.Convey("When the role map names a missing column", func() {
			_, err := tr.Transform(ctx, table(), roles.Merge(model.RoleMap{model.RoleCode: "Code"}))

			convey.Convey("Then ErrUnknownColumn is returned", func() {
				convey.So(errors.Is(err, model.ErrUnknownColumn), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := tr.Transform(cctx, table([]string{"0", "1", "0", "Shot", "", "", "", "", ""}), roles)

			convey.Convey("Then the pass stops with the context error", func() {
				convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given custom parameters", t, func() {
		tr := mustNew(
			transform.WithFPS(50),
			transform.WithPadding(5, 10),
			transform.WithOffset(276),
			transform.WithStartID(100),
		)
		roles := model.DefaultRoleMap(header, nil)

		convey.Convey("When rows are transformed", func() {
			res, err := tr.Transform(context.Background(), table(
				[]string{"1", "0", "25", "Shot", "", "", "", "", ""},
				[]string{"1", "1", "0", "Goal", "", "", "", "", ""},
			), roles)

			convey.Convey("Then offset, padding, frame rate and id seed apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Events[0].ID, convey.ShouldEqual, 100)
				convey.So(res.Events[1].ID, convey.ShouldEqual, 101)
				convey.So(res.Events[0].Window.Anchor, convey.ShouldEqual, 60.5)
				convey.So(res.Events[0].Window.Start, convey.ShouldEqual, 331.5)
				convey.So(res.Events[0].Window.End, convey.ShouldEqual, 346.5)
			})
		})
	})
}

func TestNew(t *testing.T) {
	convey.Convey("Given invalid options", t, func() {
		for name, opt := range map[string]transform.Option{
			"zero fps":      transform.WithFPS(0),
			"nan fps":       transform.WithFPS(math.NaN()),
			"negative pre":  transform.WithPadding(-1, 0),
			"negative post": transform.WithPadding(0, -0.5),
			"inf offset":    transform.WithOffset(math.Inf(1)),
			"zero id":       transform.WithStartID(0),
		} {
			_, err := transform.New(opt)
			convey.So(errors.Is(err, transform.ErrInvalidOption), convey.ShouldBeTrue)
			convey.So(name, convey.ShouldNotBeEmpty)
		}
	})

	convey.Convey("Given a negative offset", t, func() {
		convey.Convey("Then it is accepted", func() {
			_, err := transform.New(transform.WithOffset(-30))
			convey.So(err, convey.ShouldBeNil)
		})
	})
}

func TestPreview(t *testing.T) {
	convey.Convey("Given a table with a blank code row", t, func() {
		tr := mustNew()
		roles := model.DefaultRoleMap(header, nil)
		tbl := table(
			[]string{"2", "5", "12", "Shot", "Home", "Saved", "Smith", "", ""},
			[]string{"0", "1", "0", "", "", "", "", "", ""},
			[]string{"0", "2", "0", "Pass", "", "", "", "", ""},
		)

		convey.Convey("When previewing two rows", func() {
			rows, err := tr.Preview(tbl, roles, 2)

			convey.Convey("Then times are rounded and blank codes are shown", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(rows, convey.ShouldHaveLength, 2)
				convey.So(rows[0], convey.ShouldResemble, transform.PreviewRow{
					Code: "Shot", Team: "Home", Player: "Smith", Outcome: "Saved",
					Anchor: 125.48, Start: 110.48, End: 140.48,
				})
				convey.So(rows[1].Code, convey.ShouldEqual, "")
			})
		})

		convey.Convey("When the code cell carries surrounding spaces", func() {
			rows, err := tr.Preview(table(
				[]string{"0", "3", "0", "  Corner ", "", "", "", "", ""},
			), roles, 1)

			convey.Convey("Then the raw cell is shown", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(rows[0].Code, convey.ShouldEqual, "  Corner ")
			})
		})

		convey.Convey("When previewing more rows than exist", func() {
			rows, err := tr.Preview(tbl, roles, 50)

			convey.Convey("Then all rows are returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(rows, convey.ShouldHaveLength, 3)
			})
		})
	})
}
