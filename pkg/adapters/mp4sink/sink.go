// Package mp4sink assembles encoded AV1 packets into a fragmented MP4.
package mp4sink

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/herbaini/yuvpress/pkg/ports"
)

var (
	// ErrNotBegun indicates a write before Begin.
	ErrNotBegun = errors.New("mp4sink: stream not begun")

	// ErrAlreadyBegun indicates a second Begin on the same sink.
	ErrAlreadyBegun = errors.New("mp4sink: stream already begun")

	// ErrNotFrame indicates a packet that is not compressed frame data.
	ErrNotFrame = errors.New("mp4sink: packet is not a frame")

	// ErrUnsupportedCodec is returned for streams this container cannot
	// describe. Only AV1 is wired up.
	ErrUnsupportedCodec = errors.New("mp4sink: unsupported codec")

	// ErrNoFrames is returned when End is called with nothing written.
	ErrNoFrames = errors.New("mp4sink: no frames to write")
)

type frameRecord struct {
	pts      int64
	keyframe bool
	data     []byte
}

// Sink buffers frame packets and renders a fragmented MP4 at End.
type Sink struct {
	begun  bool
	info   ports.StreamInfo
	frames []frameRecord
}

// New creates an empty sink.
func New() *Sink {
	return &Sink{}
}

// Begin fixes the stream parameters.
func (s *Sink) Begin(info ports.StreamInfo) error {
	if s.begun {
		return ErrAlreadyBegun
	}
	if info.FourCC != ports.FourCCAV1 {
		return fmt.Errorf("%w: %s", ErrUnsupportedCodec, ports.FourCCString(info.FourCC))
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
	s.frames = append(s.frames, frameRecord{pts: pkt.PTS, keyframe: pkt.Keyframe, data: data})
	return nil
}

// End renders the container and resets the sink. The frame count is
// carried by the sample table, so the parameter is not encoded anywhere.
func (s *Sink) End(frameCount int) ([]byte, error) {
	if !s.begun {
		return nil, ErrNotBegun
	}
	if len(s.frames) == 0 {
		return nil, ErrNoFrames
	}

	out, err := s.build()
	if err != nil {
		return nil, err
	}
	s.begun = false
	s.frames = nil
	return out, nil
}

func (s *Sink) build() ([]byte, error) {
	// The track timescale equals the timebase denominator, so one
	// timestamp unit is exactly Num ticks and all sample times are
	// integer-exact.
	timescale := uint32(s.info.Timebase.Den)
	unit := uint64(s.info.Timebase.Num)
	trackID := uint32(1)

	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(timescale, "video", "en")

	trak := init.Moov.Trak
	av1C := configRecord(s.frames)
	av01 := mp4.CreateVisualSampleEntryBox("av01",
		uint16(s.info.Resolution.Width), uint16(s.info.Resolution.Height), av1C)
	trak.Mdia.Minf.Stbl.Stsd.AddChild(av01)

	trak.Tkhd.Width = mp4.Fixed32(s.info.Resolution.Width << 16)
	trak.Tkhd.Height = mp4.Fixed32(s.info.Resolution.Height << 16)

	frag, err := mp4.CreateFragment(1, trackID)
	if err != nil {
		return nil, fmt.Errorf("mp4sink: create fragment: %w", err)
	}

	for i, f := range s.frames {
		dur := uint32(unit)
		if i < len(s.frames)-1 {
			if delta := s.frames[i+1].pts - f.pts; delta > 0 {
				dur = uint32(uint64(delta) * unit)
			}
		}

		flags := mp4.NonSyncSampleFlags
		if f.keyframe {
			flags = mp4.SyncSampleFlags
		}

		frag.AddFullSample(mp4.FullSample{
			Sample: mp4.Sample{
				Flags: flags,
				Size:  uint32(len(f.data)),
				Dur:   dur,
			},
			DecodeTime: uint64(f.pts) * unit,
			Data:       f.data,
		})
	}

	var buf bytes.Buffer
	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso2", "av01", "mp41"})
	if err := ftyp.Encode(&buf); err != nil {
		return nil, fmt.Errorf("mp4sink: encode ftyp: %w", err)
	}
	if err := init.Moov.Encode(&buf); err != nil {
		return nil, fmt.Errorf("mp4sink: encode moov: %w", err)
	}
	if err := frag.Encode(&buf); err != nil {
		return nil, fmt.Errorf("mp4sink: encode fragment: %w", err)
	}
	return buf.Bytes(), nil
}

var _ ports.PacketSink = (*Sink)(nil)
