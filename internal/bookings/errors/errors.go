package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrRoomConflict is returned when a stay overlaps an active booking
	// for the same room.
	ErrRoomConflict = errors.New("room already booked for the requested dates")

	// ErrLockContention is returned when another request holds the advisory
	// lock for the room.
	ErrLockContention = errors.New("room is currently being booked by another request")
)
