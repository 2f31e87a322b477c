package errors

import "errors"

var (
	ErrNotFound = errors.New("directory record not found")

	ErrInvalidID = errors.New("invalid directory ID format")

	ErrDuplicateEmail = errors.New("email already registered")
)
