package mp4sink

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/herbaini/yuvpress/pkg/ports"
)

func testInfo() ports.StreamInfo {
	return ports.StreamInfo{
		Resolution: ports.Resolution{Width: 64, Height: 64},
		Timebase:   ports.Rational{Num: 1, Den: 30},
		FourCC:     ports.FourCCAV1,
		Pass:       ports.PassOne,
	}
}

// obu builds a single OBU with a size field.
func obu(obuType byte, payload []byte) []byte {
	out := []byte{obuType<<3 | 0x02, byte(len(payload))}
	return append(out, payload...)
}

// keyframePayload is a minimal temporal unit: temporal delimiter,
// sequence header, frame.
func keyframePayload() []byte {
	var out []byte
	out = append(out, obu(2, nil)...)
	out = append(out, obu(1, []byte{0xAA, 0xBB, 0xCC, 0xDD})...)
	out = append(out, obu(6, []byte{0x01, 0x02, 0x03})...)
	return out
}

func TestSink_RejectsNonAV1(t *testing.T) {
	info := testInfo()
	info.FourCC = ports.FourCCVP8

	s := New()
	if err := s.Begin(info); !errors.Is(err, ErrUnsupportedCodec) {
		t.Fatalf("expected ErrUnsupportedCodec, got %v", err)
	}
}

func TestSink_NoFrames(t *testing.T) {
	s := New()
	if err := s.Begin(testInfo()); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if _, err := s.End(0); !errors.Is(err, ErrNoFrames) {
		t.Fatalf("expected ErrNoFrames, got %v", err)
	}
}

func TestSink_OrderingErrors(t *testing.T) {
	s := New()
	if err := s.WritePacket(ports.Packet{Kind: ports.KindFrame}); !errors.Is(err, ErrNotBegun) {
		t.Fatalf("expected ErrNotBegun, got %v", err)
	}
	if err := s.Begin(testInfo()); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := s.Begin(testInfo()); !errors.Is(err, ErrAlreadyBegun) {
		t.Fatalf("expected ErrAlreadyBegun, got %v", err)
	}
	if err := s.WritePacket(ports.Packet{Kind: ports.KindStats}); !errors.Is(err, ErrNotFrame) {
		t.Fatalf("expected ErrNotFrame, got %v", err)
	}
}

func TestSink_BuildsFragmentedMP4(t *testing.T) {
	s := New()
	if err := s.Begin(testInfo()); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	key := keyframePayload()
	delta := obu(6, []byte{0x0E, 0x0F})
	packets := []ports.Packet{
		{Kind: ports.KindFrame, Data: key, PTS: 0, Keyframe: true},
		{Kind: ports.KindFrame, Data: delta, PTS: 1},
		{Kind: ports.KindFrame, Data: delta, PTS: 2},
	}
	for _, pkt := range packets {
		if err := s.WritePacket(pkt); err != nil {
			t.Fatalf("WritePacket failed: %v", err)
		}
	}

	out, err := s.End(3)
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}

	if !bytes.Equal(out[4:8], []byte("ftyp")) {
		t.Fatalf("expected ftyp box first, got %q", out[4:8])
	}
	if !bytes.Equal(out[8:12], []byte("isom")) {
		t.Errorf("major brand: got %q", out[8:12])
	}
	if !bytes.Contains(out, key) {
		t.Error("keyframe payload missing from output")
	}

	decoded, err := mp4.DecodeFile(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode of produced file failed: %v", err)
	}
	if !decoded.IsFragmented() {
		t.Fatal("expected a fragmented file")
	}
	if decoded.Init == nil || decoded.Init.Moov == nil {
		t.Fatal("missing init segment")
	}

	var found bool
	for _, trak := range decoded.Init.Moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		if trak.Tkhd.Width>>16 != 64 || trak.Tkhd.Height>>16 != 64 {
			t.Errorf("track dimensions: got %dx%d", trak.Tkhd.Width>>16, trak.Tkhd.Height>>16)
		}
		for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
			if child.Type() == "av01" {
				found = true
			}
		}
	}
	if !found {
		t.Error("no av01 sample entry in the init segment")
	}
}

func TestExtractSequenceHeader(t *testing.T) {
	seqHdr := obu(1, []byte{0xAA, 0xBB, 0xCC, 0xDD})

	var stream []byte
	stream = append(stream, obu(2, nil)...)
	stream = append(stream, seqHdr...)
	stream = append(stream, obu(6, []byte{0x01, 0x02})...)

	got := extractSequenceHeader(stream)
	if !bytes.Equal(got, seqHdr) {
		t.Errorf("got %v, want %v", got, seqHdr)
	}
}

func TestExtractSequenceHeader_Absent(t *testing.T) {
	stream := obu(6, []byte{0x01, 0x02})
	if got := extractSequenceHeader(stream); got != nil {
		t.Errorf("expected nil for a stream without a sequence header, got %v", got)
	}
}

func TestReadLeb128(t *testing.T) {
	tests := []struct {
		data       []byte
		wantValue  int
		wantOffset int
	}{
		{[]byte{0x00}, 0, 1},
		{[]byte{0x7F}, 127, 1},
		{[]byte{0x80, 0x01}, 128, 2},
		{[]byte{0xE5, 0x8E, 0x26}, 624485, 3},
	}
	for _, tt := range tests {
		value, offset := readLeb128(tt.data, 0)
		if value != tt.wantValue || offset != tt.wantOffset {
			t.Errorf("readLeb128(%v): got (%d, %d), want (%d, %d)",
				tt.data, value, offset, tt.wantValue, tt.wantOffset)
		}
	}
}
