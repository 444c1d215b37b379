package color_test

import (
	"fmt"
	"testing"

	"github.com/okian/clipmark/internal/domain/color"
	"github.com/okian/clipmark/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestHexToChannels(t *testing.T) {
	convey.Convey("Given valid hex colors", t, func() {
		convey.Convey("Then each byte is expanded by 257", func() {
			convey.So(color.HexToChannels("#FF0000"), convey.ShouldResemble, model.RGB16{R: 65535, G: 0, B: 0})
			convey.So(color.HexToChannels("00ff80"), convey.ShouldResemble, model.RGB16{R: 0, G: 65535, B: 0x80 * 257})
			convey.So(color.HexToChannels(" #0a0B0c "), convey.ShouldResemble, model.RGB16{R: 0x0a0a, G: 0x0b0b, B: 0x0c0c})
		})

		convey.Convey("Then the leading hash is immaterial", func() {
			for _, v := range []int{0x000000, 0x123456, 0xabcdef, 0xffffff, 0x7f8081} {
				s := fmt.Sprintf("%06x", v)
				got := color.HexToChannels(s)
				convey.So(color.HexToChannels("#"+s), convey.ShouldResemble, got)
				convey.So(got.R, convey.ShouldEqual, uint16(v>>16&0xff)*257)
				convey.So(got.G, convey.ShouldEqual, uint16(v>>8&0xff)*257)
				convey.So(got.B, convey.ShouldEqual, uint16(v&0xff)*257)
			}
		})
	})

	convey.Convey("Given malformed colors", t, func() {
		convey.Convey("Then the mid-gray fallback is returned", func() {
			for _, in := range []string{"", "#", "#FFF", "#FF00000", "GG0000", "##FF0000", "#FF 000", "red"} {
				convey.So(color.HexToChannels(in), convey.ShouldResemble, model.RGB16{R: 0x8080, G: 0x8080, B: 0x8080})
			}
		})
	})
}
