package store

import "errors"

var (
	// ErrUnavailable is returned when the persistence layer cannot be
	// reached. Callers keep operating in memory and surface a warning.
	ErrUnavailable = errors.New("storage unavailable")
)
