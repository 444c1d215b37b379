package model

// Table is a normalized CSV: every row has exactly len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// Empty reports whether the source produced no rows at all, header included.
func (t Table) Empty() bool {
	return len(t.Header) == 0
}

// ColumnIndex returns the position of the first header cell named col, or -1.
func (t Table) ColumnIndex(col string) int {
	for i, h := range t.Header {
		if h == col {
			return i
		}
	}
	return -1
}
