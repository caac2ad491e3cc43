package aomengine

import "errors"

var (
	// ErrNotAvailable is returned when the binary was built without libaom.
	ErrNotAvailable = errors.New("aomengine: built without cgo, libaom unavailable")

	// ErrClosed is returned when a released handle is used again.
	ErrClosed = errors.New("aomengine: handle already closed")
)
