package ports

// StreamInfo describes the stream a sink is about to receive.
type StreamInfo struct {
	Resolution Resolution
	Timebase   Rational
	FourCC     uint32
	Pass       PassMode
}

// PacketSink serializes compressed frame packets into a container.
type PacketSink interface {
	// Begin prepares the sink for a new stream.
	Begin(info StreamInfo) error

	// WritePacket appends one compressed frame packet.
	WritePacket(pkt Packet) error

	// End materializes the container and returns its bytes.
	// frameCount is the authoritative number of frames processed.
	End(frameCount int) ([]byte, error)
}

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate artifacts of an encode run.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveSessionJSON saves the resolved session configuration as JSON.
	SaveSessionJSON(data []byte) error

	// SaveRawFrame saves one raw input frame.
	SaveRawFrame(index int, data []byte) error

	// SavePacket saves one engine output packet.
	SavePacket(index int, pkt Packet) error
}
