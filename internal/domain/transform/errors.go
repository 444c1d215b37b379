package transform

import "errors"

// Sentinel kinds for transformer errors.
var (
	ErrInvalidOption = errors.New("invalid transform option")
)
