package csvnorm

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding selects how raw upload bytes are decoded to text.
type Encoding string

// Supported encodings.
const (
	UTF8    Encoding = "utf-8"
	UTF8BOM Encoding = "utf-8-sig"
	Latin1  Encoding = "latin-1"
)

var encodingAliases = map[string]Encoding{
	"utf-8":      UTF8,
	"utf8":       UTF8,
	"utf-8-sig":  UTF8BOM,
	"utf8-sig":   UTF8BOM,
	"latin-1":    Latin1,
	"latin1":     Latin1,
	"iso-8859-1": Latin1,
}

// ParseEncoding resolves a user supplied encoding name. Blank means UTF8.
func ParseEncoding(name string) (Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return UTF8, nil
	}
	enc, ok := encodingAliases[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return enc, nil
}

func (e Encoding) codec() encoding.Encoding {
	switch e {
	case UTF8BOM:
		return unicode.UTF8BOM
	case Latin1:
		return charmap.ISO8859_1
	default:
		return unicode.UTF8
	}
}

// Decode converts data to a valid UTF-8 string, replacing undecodable
// sequences with U+FFFD. It never fails.
func (e Encoding) Decode(data []byte) string {
	out, err := e.codec().NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "\ufffd")
	}
	return string(out)
}
