package tracking

import "errors"

var (
	// ErrDuplicateName indicates an activity with that name already exists.
	ErrDuplicateName = errors.New("activity name already exists")
	// ErrActivityNotFound indicates the activity doesn't exist.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrInvalidInput indicates invalid activity input.
	ErrInvalidInput = errors.New("invalid activity input")
)
