package mocks

import (
	"github.com/herbaini/yuvpress/pkg/ports"
)

// CodecEngine is a mock implementation of ports.CodecEngine.
type CodecEngine struct {
	NameValue     string
	FourCCValue   uint32
	DefaultsValue ports.EngineDefaults
	OpenFunc      func(cfg ports.EngineConfig) (ports.EngineHandle, error)

	// Handle is returned by Open when OpenFunc is nil.
	Handle *EngineHandle

	// Recorded calls for verification
	OpenCalled bool
	OpenConfig ports.EngineConfig
}

// NewCodecEngine creates a mock engine with VP8-like defaults.
func NewCodecEngine() *CodecEngine {
	return &CodecEngine{
		NameValue:     "mock engine",
		FourCCValue:   ports.FourCCVP8,
		DefaultsValue: ports.EngineDefaults{Width: 320, Height: 240, BitrateKbps: 256},
		Handle:        &EngineHandle{},
	}
}

func (m *CodecEngine) Name() string {
	return m.NameValue
}

func (m *CodecEngine) FourCC() uint32 {
	return m.FourCCValue
}

func (m *CodecEngine) Defaults() ports.EngineDefaults {
	return m.DefaultsValue
}

func (m *CodecEngine) Open(cfg ports.EngineConfig) (ports.EngineHandle, error) {
	m.OpenCalled = true
	m.OpenConfig = cfg
	if m.OpenFunc != nil {
		return m.OpenFunc(cfg)
	}
	return m.Handle, nil
}

var _ ports.CodecEngine = (*CodecEngine)(nil)

// EngineHandle is a mock implementation of ports.EngineHandle.
// Without a SubmitFunc it emits one frame packet per submitted frame,
// flagging pts 0 as a keyframe.
type EngineHandle struct {
	SubmitFunc func(frame []byte, pts int64) ([]ports.Packet, error)
	CloseFunc  func() error

	// Recorded calls for verification
	SubmitCalls []SubmitCall
	CloseCalled bool
}

// SubmitCall records a call to Submit.
type SubmitCall struct {
	PTS       int64
	FrameSize int
}

func (m *EngineHandle) Submit(frame []byte, pts int64) ([]ports.Packet, error) {
	m.SubmitCalls = append(m.SubmitCalls, SubmitCall{PTS: pts, FrameSize: len(frame)})
	if m.SubmitFunc != nil {
		return m.SubmitFunc(frame, pts)
	}
	data := []byte{0xC0, 0xDE, byte(pts), byte(pts >> 8)}
	return []ports.Packet{{
		Kind:     ports.KindFrame,
		Data:     data,
		PTS:      pts,
		Keyframe: pts == 0,
	}}, nil
}

func (m *EngineHandle) Close() error {
	m.CloseCalled = true
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

var _ ports.EngineHandle = (*EngineHandle)(nil)
