package session

import "errors"

var (
	// ErrInvalidResolution is returned when a dimension is odd or below
	// the minimum the engines accept.
	ErrInvalidResolution = errors.New("session: invalid resolution")

	// ErrInvalidTimebase is returned when the timebase fraction is not
	// positive.
	ErrInvalidTimebase = errors.New("session: invalid timebase")

	// ErrInvalidState is returned when an operation is called outside
	// its lifecycle phase.
	ErrInvalidState = errors.New("session: operation not allowed in current state")

	// ErrFrameSize is returned when a frame buffer does not match the
	// configured resolution.
	ErrFrameSize = errors.New("session: frame buffer size mismatch")

	// ErrEngineInit is returned when the engine cannot be opened.
	ErrEngineInit = errors.New("session: engine initialization failed")

	// ErrEncode is returned when the engine rejects a frame. Encode
	// failures are fatal for the run.
	ErrEncode = errors.New("session: encode failed")

	// ErrFinalize is returned when releasing the engine handle fails.
	ErrFinalize = errors.New("session: finalize failed")
)
