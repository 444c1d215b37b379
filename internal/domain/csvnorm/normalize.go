// Package csvnorm turns arbitrary, possibly malformed CSV uploads into a
// rectangular table of strings.
package csvnorm

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/okian/clipmark/internal/domain/model"
)

// extraPrefix names synthesized header cells for columns the header lacks.
const extraPrefix = "Extra"

// Normalize decodes data and parses it into a table. The first line is the
// header. An input with no records, or whose first line is empty, yields an
// empty table, which callers treat as unreadable.
func Normalize(data []byte, enc Encoding) model.Table {
	text := enc.Decode(data)
	records := readRecords(text)
	if len(records) == 0 || startsWithEmptyLine(text) {
		return model.Table{Header: []string{}, Rows: [][]string{}}
	}

	header := records[0]
	rows := records[1:]

	width := len(header)
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	for i := 1; len(header) < width; i++ {
		header = append(header, extraPrefix+strconv.Itoa(i))
	}

	for i, r := range rows {
		if len(r) < width {
			padded := make([]string, width)
			copy(padded, r)
			rows[i] = padded
		}
	}

	return model.Table{Header: header, Rows: rows}
}

// startsWithEmptyLine reports whether the header line is blank. The csv
// reader would skip it and promote the next line to header.
func startsWithEmptyLine(text string) bool {
	return strings.HasPrefix(text, "\n") || strings.HasPrefix(text, "\r")
}

// readRecords parses text leniently: ragged rows and stray quotes are
// accepted, and a record the reader rejects is skipped.
func readRecords(text string) [][]string {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records := [][]string{}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			break
		}
		records = append(records, rec)
	}
	return records
}
