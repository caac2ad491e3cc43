package vpxengine

import "errors"

var (
	// ErrNotAvailable is returned when the binary was built without libvpx.
	ErrNotAvailable = errors.New("vpxengine: built without cgo, libvpx unavailable")

	// ErrUnknownCodec is returned for codec names other than vp8 and vp9.
	ErrUnknownCodec = errors.New("vpxengine: unknown codec")

	// ErrClosed is returned when a released handle is used again.
	ErrClosed = errors.New("vpxengine: handle already closed")
)
