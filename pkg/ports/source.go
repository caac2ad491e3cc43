package ports

// ReadStatus reports the outcome of one frame read.
type ReadStatus int

const (
	// ReadFull means the buffer holds exactly one complete frame.
	ReadFull ReadStatus = iota
	// ReadPartial means the stream ended in the middle of a frame.
	ReadPartial
	// ReadEmpty means the stream ended on a frame boundary.
	ReadEmpty
)

// String returns the string representation of the read status.
func (s ReadStatus) String() string {
	switch s {
	case ReadFull:
		return "full"
	case ReadPartial:
		return "partial"
	case ReadEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// FrameSource produces raw planar 4:2:0 frames.
type FrameSource interface {
	// Read fills buf with the next frame. The same buffer is reused
	// across calls; implementations must not keep a reference to it.
	// A partial or empty read is a status, not an error; the error
	// return is reserved for stream faults.
	Read(buf []byte) (ReadStatus, error)
}
