package app

import "errors"

var (
	// ErrNotFound is returned for ids that are not part of today's plan
	ErrNotFound = errors.New("not found")
	// ErrInvalid is returned for rejected user input
	ErrInvalid = errors.New("invalid input")
	// ErrLocked is returned when a ritual is not open at this time of day
	ErrLocked = errors.New("ritual is locked")
)
