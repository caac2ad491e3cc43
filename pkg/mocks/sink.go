package mocks

import (
	"bytes"
	"sync"

	"github.com/herbaini/yuvpress/pkg/ports"
)

// PacketSink is a mock implementation of ports.PacketSink. Without an
// EndFunc it returns the concatenated payloads of the written packets.
type PacketSink struct {
	BeginFunc func(info ports.StreamInfo) error
	WriteFunc func(pkt ports.Packet) error
	EndFunc   func(frameCount int) ([]byte, error)

	// Recorded calls for verification
	BeginCalled bool
	Info        ports.StreamInfo
	Written     []ports.Packet
	EndCalled   bool
	EndCount    int
}

func (m *PacketSink) Begin(info ports.StreamInfo) error {
	m.BeginCalled = true
	m.Info = info
	if m.BeginFunc != nil {
		return m.BeginFunc(info)
	}
	return nil
}

func (m *PacketSink) WritePacket(pkt ports.Packet) error {
	stored := pkt
	stored.Data = append([]byte(nil), pkt.Data...)
	m.Written = append(m.Written, stored)
	if m.WriteFunc != nil {
		return m.WriteFunc(pkt)
	}
	return nil
}

func (m *PacketSink) End(frameCount int) ([]byte, error) {
	m.EndCalled = true
	m.EndCount = frameCount
	if m.EndFunc != nil {
		return m.EndFunc(frameCount)
	}
	var buf bytes.Buffer
	for _, pkt := range m.Written {
		buf.Write(pkt.Data)
	}
	return buf.Bytes(), nil
}

var _ ports.PacketSink = (*PacketSink)(nil)

// DebugSink is a mock implementation of ports.DebugSink. Saved data is
// copied so reused buffers stay verifiable.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	SessionJSON []byte
	RawFrames   map[int][]byte
	Packets     map[int]ports.Packet
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:   enabled,
		RawFrames: make(map[int][]byte),
		Packets:   make(map[int]ports.Packet),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveSessionJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionJSON = append([]byte(nil), data...)
	return nil
}

func (m *DebugSink) SaveRawFrame(index int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RawFrames[index] = append([]byte(nil), data...)
	return nil
}

func (m *DebugSink) SavePacket(index int, pkt ports.Packet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := pkt
	stored.Data = append([]byte(nil), pkt.Data...)
	m.Packets[index] = stored
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
