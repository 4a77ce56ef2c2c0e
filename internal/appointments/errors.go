package appointments

import "errors"

var (
	// ErrNotFound is returned when no appointment matches the given ID.
	ErrNotFound = errors.New("appointment not found")

	// ErrInvalidStatus is returned when a status update names an unknown status.
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidStage is returned when a follow-up stage value is unknown.
	ErrInvalidStage = errors.New("invalid follow-up stage")
)
