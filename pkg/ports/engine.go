package ports

// PacketKind classifies the payloads a codec engine emits.
type PacketKind int

const (
	// KindFrame is a compressed video frame.
	KindFrame PacketKind = iota
	// KindStats is rate-control statistics, emitted during a first pass.
	KindStats
	// KindUnknown is any other engine-specific payload.
	KindUnknown
)

// String returns the string representation of the packet kind.
func (k PacketKind) String() string {
	switch k {
	case KindFrame:
		return "frame"
	case KindStats:
		return "stats"
	default:
		return "unknown"
	}
}

// PassMode selects the rate-control pass.
type PassMode int

const (
	// PassOne is single-pass encoding.
	PassOne PassMode = iota
	// PassFirst is the statistics-gathering pass of a two-pass encode.
	PassFirst
	// PassLast is the final pass of a two-pass encode.
	PassLast
)

// String returns the string representation of the pass mode.
func (p PassMode) String() string {
	switch p {
	case PassFirst:
		return "first"
	case PassLast:
		return "last"
	default:
		return "one"
	}
}

// Deadline selects the engine's per-frame time budget.
type Deadline int

const (
	// DeadlineRealtime requests the lowest-latency mode.
	DeadlineRealtime Deadline = iota
	// DeadlineGood trades latency for quality.
	DeadlineGood
	// DeadlineBest requests the highest quality regardless of time.
	DeadlineBest
)

// Packet is one unit of engine output. Data is an independent copy
// owned by the receiver.
type Packet struct {
	Kind     PacketKind
	Data     []byte
	PTS      int64
	Keyframe bool
}

// EngineDefaults exposes an engine's built-in configuration. The
// default frame size and bitrate anchor bitrate scaling for other
// resolutions.
type EngineDefaults struct {
	Width       int
	Height      int
	BitrateKbps int
}

// EngineConfig is the resolved configuration an engine is opened with.
type EngineConfig struct {
	Width       int
	Height      int
	TimebaseNum int
	TimebaseDen int
	BitrateKbps int
	Pass        PassMode
	Deadline    Deadline
}

// CodecEngine abstracts a video compression engine.
type CodecEngine interface {
	// Name returns a human-readable engine name for logs.
	Name() string

	// FourCC returns the container tag of the produced bitstream.
	FourCC() uint32

	// Defaults returns the engine's built-in configuration.
	Defaults() EngineDefaults

	// Open allocates an engine instance for the given configuration.
	// The returned handle must be closed exactly once.
	Open(cfg EngineConfig) (EngineHandle, error)
}

// EngineHandle is one open engine instance. Handles are not safe for
// concurrent use.
type EngineHandle interface {
	// Submit hands one raw 4:2:0 frame to the engine and returns every
	// packet it produced for the call, which may be none. The engine
	// must not retain frame after returning.
	Submit(frame []byte, pts int64) ([]Packet, error)

	// Close releases the engine instance.
	Close() error
}
