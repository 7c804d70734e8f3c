package core

import "errors"

// Common errors.
var (
	ErrNotFound       = errors.New("record not found")
	ErrContentTooLong = errors.New("note content exceeds maximum length")
)
