package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrSlotTaken is the storage-level uniqueness violation: another
	// non-rejected booking already holds the resource/date/slot triple.
	ErrSlotTaken = errors.New("slot already held by a non-rejected booking")
)
