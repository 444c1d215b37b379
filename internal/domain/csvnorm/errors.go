package csvnorm

import "errors"

// Sentinel kinds for normalizer errors.
var (
	ErrUnknownEncoding = errors.New("unknown text encoding")
)
