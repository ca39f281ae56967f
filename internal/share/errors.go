package share

import "errors"

var (
	// ErrNotFound is returned when no record exists for a code.
	ErrNotFound = errors.New("share not found")
	// ErrInvalidTimestamp is returned when a record exists but its created_at cannot be parsed.
	ErrInvalidTimestamp = errors.New("invalid share timestamp")
	// ErrExpired is returned when a record is past its expiry window.
	ErrExpired = errors.New("share expired")

	ErrInvalidFileName    = errors.New("file name is required")
	ErrMissingField       = errors.New("file code and storage key are required")
	ErrIntentMismatch     = errors.New("upload intent does not match")
	ErrCodeSpaceExhausted = errors.New("could not allocate a unique share code")
)
