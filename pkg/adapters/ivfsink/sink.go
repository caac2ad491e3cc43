// Package ivfsink assembles encoded packets into an IVF byte stream.
package ivfsink

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/herbaini/yuvpress/pkg/ports"
)

// ErrNotBegun indicates a write before Begin.
var ErrNotBegun = errors.New("ivfsink: stream not begun")

// ErrAlreadyBegun indicates a second Begin on the same sink.
var ErrAlreadyBegun = errors.New("ivfsink: stream already begun")

// ErrNotFrame indicates a packet that is not compressed frame data.
var ErrNotFrame = errors.New("ivfsink: packet is not a frame")

type frameRecord struct {
	pts  int64
	data []byte
}

// Sink buffers frame packets and renders the complete IVF stream at End.
// Buffering is required because the frame count lives in the file header.
type Sink struct {
	begun  bool
	info   ports.StreamInfo
	frames []frameRecord
}

// New creates an empty sink.
func New() *Sink {
	return &Sink{}
}

// Begin fixes the stream parameters. IVF stores dimensions as 16-bit
// fields, so oversized resolutions are rejected here rather than truncated.
func (s *Sink) Begin(info ports.StreamInfo) error {
	if s.begun {
		return ErrAlreadyBegun
	}
	if info.Resolution.Width > 0xFFFF || info.Resolution.Height > 0xFFFF {
		return fmt.Errorf("ivfsink: resolution %s exceeds 16-bit fields", info.Resolution)
	}
	s.info = info
	s.begun = true
	return nil
}

// WritePacket appends one compressed frame.
func (s *Sink) WritePacket(pkt ports.Packet) error {
	if !s.begun {
		return ErrNotBegun
	}
	if pkt.Kind != ports.KindFrame {
		return fmt.Errorf("%w: %s", ErrNotFrame, pkt.Kind)
	}
	data := make([]byte, len(pkt.Data))
	copy(data, pkt.Data)
	s.frames = append(s.frames, frameRecord{pts: pkt.PTS, data: data})
	return nil
}

// End renders the stream and resets the sink. frameCount is the number of
// source frames submitted to the encoder, which is what the header carries;
// it may differ from the packet count when the encoder buffers or drops.
// First-pass output is raw statistics and gets no file header.
func (s *Sink) End(frameCount int) ([]byte, error) {
	if !s.begun {
		return nil, ErrNotBegun
	}

	var buf bytes.Buffer
	if s.info.Pass != ports.PassFirst {
		hdr := Header{
			FourCC:      s.info.FourCC,
			Width:       uint16(s.info.Resolution.Width),
			Height:      uint16(s.info.Resolution.Height),
			TimebaseDen: uint32(s.info.Timebase.Den),
			TimebaseNum: uint32(s.info.Timebase.Num),
			FrameCount:  uint32(frameCount),
		}
		buf.Write(hdr.Marshal())
	}

	rec := make([]byte, FrameHeaderSize)
	for _, f := range s.frames {
		binary.LittleEndian.PutUint32(rec[0:4], uint32(len(f.data)))
		binary.LittleEndian.PutUint32(rec[4:8], uint32(uint64(f.pts)))
		binary.LittleEndian.PutUint32(rec[8:12], uint32(uint64(f.pts)>>32))
		buf.Write(rec)
		buf.Write(f.data)
	}

	s.begun = false
	s.frames = nil
	return buf.Bytes(), nil
}

var _ ports.PacketSink = (*Sink)(nil)
