package mocks

import (
	"github.com/herbaini/yuvpress/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource. It serves
// Frames in order, then reports EndStatus once (if partial) and empty
// afterwards.
type FrameSource struct {
	Frames    [][]byte
	EndStatus ports.ReadStatus
	ReadFunc  func(buf []byte) (ports.ReadStatus, error)

	// Recorded calls for verification
	ReadCalls int

	next          int
	partialServed bool
}

// NewFrameSource creates a source that serves the given frames and
// then reports a clean end of stream.
func NewFrameSource(frames [][]byte) *FrameSource {
	return &FrameSource{
		Frames:    frames,
		EndStatus: ports.ReadEmpty,
	}
}

func (m *FrameSource) Read(buf []byte) (ports.ReadStatus, error) {
	m.ReadCalls++
	if m.ReadFunc != nil {
		return m.ReadFunc(buf)
	}
	if m.next < len(m.Frames) {
		copy(buf, m.Frames[m.next])
		m.next++
		return ports.ReadFull, nil
	}
	if m.EndStatus == ports.ReadPartial && !m.partialServed {
		m.partialServed = true
		return ports.ReadPartial, nil
	}
	return ports.ReadEmpty, nil
}

var _ ports.FrameSource = (*FrameSource)(nil)
