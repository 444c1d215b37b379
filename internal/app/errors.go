package service

import "errors"

// Sentinel kinds for conversion errors.
var (
	ErrUnreadable     = errors.New("csv unreadable: no rows decoded")
	ErrInvalidRequest = errors.New("invalid conversion request")
)
