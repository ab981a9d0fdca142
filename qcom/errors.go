package qcom

import "errors"

var (
	// ErrNotFound is returned when a requested rate isn't in a clock's
	// frequency table. Rates are never rounded to a nearby entry.
	ErrNotFound = errors.New("rate not in frequency table")

	// ErrTimeout is returned when an update, acknowledgment or status bit
	// doesn't settle within the polling bound.
	ErrTimeout = errors.New("hardware timeout")

	// ErrInvalidClock is returned for identifiers outside the board's
	// clock table, but only by a strict Controller.
	ErrInvalidClock = errors.New("invalid clock id")

	ErrInvalidReset = errors.New("invalid reset id")
	ErrInvalidGDSC  = errors.New("invalid power domain id")
)
