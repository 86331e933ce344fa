package models

import "errors"

// Sentinel errors shared across repositories, services and handlers.
// Services wrap these with context; handlers match them with errors.Is
// to pick the response status.
var (
	// ErrNotFound means the requested entity does not exist or is not
	// owned by the requesting user's scope.
	ErrNotFound = errors.New("not found")

	// ErrValidation means the input is missing or malformed.
	ErrValidation = errors.New("invalid input")

	// ErrCapacity means the operation would exceed the per-item photo cap.
	ErrCapacity = errors.New("photo limit reached")
)
