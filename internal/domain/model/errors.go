package model

import "errors"

// Sentinel kinds for role map errors.
var (
	ErrUnknownRole   = errors.New("unknown role")
	ErrUnknownColumn = errors.New("column not in header")
)
