package core

import "errors"

// Request-shape errors, detected before any decoding or storage access.
var (
	ErrUserIDRequired  = errors.New("user ID is required")
	ErrPayloadRequired = errors.New("file data is required")
	ErrUnknownFormat   = errors.New("unrecognized format")
)

// DecodeError marks a payload that could not be decoded at all. No rows are
// considered processed and no report is produced.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode payload: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// StorageError marks a failed transactional write or read. It is fatal to
// the whole batch and is never conflated with per-row validation errors.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage: " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }
