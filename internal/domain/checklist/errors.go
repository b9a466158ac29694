package checklist

import "errors"

var (
	// ErrDuplicateName indicates a todo with that name already exists.
	ErrDuplicateName = errors.New("todo name already exists")
	// ErrInvalidInput indicates invalid todo input.
	ErrInvalidInput = errors.New("invalid todo input")
)
