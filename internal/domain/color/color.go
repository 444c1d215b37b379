// Package color converts hex colors to the 16-bit channels used by the
// timeline markup.
package color

import (
	"encoding/hex"
	"strings"

	"github.com/okian/clipmark/internal/domain/model"
)

const (
	hexDigits = 6
	// byte*257 == byte<<8 | byte, the 8 to 16 bit expansion.
	channelScale  = 257
	fallbackLevel = 0x8080
)

// Fallback is the mid-gray used when a hex value is absent or malformed.
var Fallback = model.RGB16{R: fallbackLevel, G: fallbackLevel, B: fallbackLevel}

// HexToChannels parses "#RRGGBB" or "RRGGBB" (surrounding whitespace
// ignored). Any other shape returns Fallback.
func HexToChannels(text string) model.RGB16 {
	s := strings.TrimPrefix(strings.TrimSpace(text), "#")
	if len(s) != hexDigits {
		return Fallback
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Fallback
	}
	return model.RGB16{
		R: uint16(b[0]) * channelScale,
		G: uint16(b[1]) * channelScale,
		B: uint16(b[2]) * channelScale,
	}
}
