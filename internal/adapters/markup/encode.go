package markup

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Option applies a configuration option to the encoder.
type Option func(*encoder)

type encoder struct {
	prefix string
	indent string
}

// WithIndent pretty-prints the document. The default output is compact.
func WithIndent(prefix, indent string) Option {
	return func(e *encoder) {
		e.prefix = prefix
		e.indent = indent
	}
}

// Encode writes the UTF-8 declaration followed by the document.
func Encode(w io.Writer, doc Document, opts ...Option) error {
	cfg := &encoder{}
	for _, opt := range opts {
		opt(cfg)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	enc := xml.NewEncoder(w)
	if cfg.prefix != "" || cfg.indent != "" {
		enc.Indent(cfg.prefix, cfg.indent)
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

// Marshal is Encode into a byte slice.
func Marshal(doc Document, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
