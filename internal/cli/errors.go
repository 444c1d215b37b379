package cli

import "errors"

// Sentinel kinds for CLI errors.
var (
	ErrUsage       = errors.New("usage")
	ErrNoInputs    = errors.New("no input files")
	ErrBatchFailed = errors.New("some files failed to convert")
)
