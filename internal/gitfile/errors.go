package gitfile

import "errors"

var (
	// ErrKeyNotFound is returned when a key does not exist in the store
	// or any of its fallback files.
	ErrKeyNotFound = errors.New("key not found")

	// ErrStoreClosed is returned when an operation is attempted on a
	// store after Close.
	ErrStoreClosed = errors.New("store is closed")
)
