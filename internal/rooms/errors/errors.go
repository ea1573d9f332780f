package errors

import "errors"

var (
	ErrNotFound = errors.New("room not found")

	ErrInvalidID = errors.New("invalid room ID format")

	// ErrDuplicateNumber is returned when a room with the same number
	// already exists.
	ErrDuplicateNumber = errors.New("room number already in use")
)
