package markup

import "errors"

// Sentinel kinds for markup errors.
var (
	ErrEncode = errors.New("markup encode failed")
)
