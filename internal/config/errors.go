package config

import (
	"errors"

	"gitconf/internal/gitfile"
)

var (
	// ErrKeyNotFound is returned by Delete when the key does not exist.
	// Reads never return it; a missing key yields the caller's default.
	ErrKeyNotFound = gitfile.ErrKeyNotFound

	// ErrUnsupportedType is returned when a value's type is outside the
	// closed set {int32, int64, bool, string}.
	ErrUnsupportedType = errors.New("unsupported value type")

	// ErrScopeNotAvailable is returned by Set when it targets a scope
	// whose store was never opened (no global or system file was found).
	ErrScopeNotAvailable = errors.New("configuration scope not available")

	// ErrInvalidLevel is returned when a Level outside {Local, Global,
	// System} is passed to Set.
	ErrInvalidLevel = errors.New("invalid configuration level")

	// ErrClosed is returned when the configuration is used after Close
	// or after a failed Save.
	ErrClosed = errors.New("configuration is closed")
)
