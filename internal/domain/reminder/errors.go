package reminder

import "errors"

var (
	// ErrReminderNotFound indicates the reminder doesn't exist.
	ErrReminderNotFound = errors.New("reminder not found")
	// ErrInvalidInput indicates invalid reminder input.
	ErrInvalidInput = errors.New("invalid reminder input")
)
