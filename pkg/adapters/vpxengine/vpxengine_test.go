package vpxengine

import (
	"errors"
	"testing"

	"github.com/herbaini/yuvpress/pkg/ports"
)

func TestNew(t *testing.T) {
	tests := []struct {
		codec      Codec
		wantErr    bool
		wantFourCC uint32
	}{
		{CodecVP8, false, ports.FourCCVP8},
		{CodecVP9, false, ports.FourCCVP9},
		{Codec("h264"), true, 0},
		{Codec(""), true, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.codec), func(t *testing.T) {
			e, err := New(tt.codec)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownCodec) {
					t.Fatalf("expected ErrUnknownCodec, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if e.FourCC() != tt.wantFourCC {
				t.Errorf("fourcc: got %#x, want %#x", e.FourCC(), tt.wantFourCC)
			}
			if e.Name() == "" {
				t.Error("expected a non-empty engine name")
			}
		})
	}
}

func TestEngine_Defaults(t *testing.T) {
	e, err := New(CodecVP8)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	d := e.Defaults()
	if d.Width != 320 || d.Height != 240 {
		t.Errorf("default frame size: got %dx%d", d.Width, d.Height)
	}
	if d.BitrateKbps != 256 {
		t.Errorf("default bitrate: got %d", d.BitrateKbps)
	}
}

func TestEngine_OpenRoundTrip(t *testing.T) {
	if !Available() {
		t.Skip("built without libvpx")
	}

	e, err := New(CodecVP8)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	cfg := ports.EngineConfig{
		Width:       64,
		Height:      64,
		TimebaseNum: 1,
		TimebaseDen: 30,
		BitrateKbps: 13,
	}
	h, err := e.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	frame := make([]byte, 64*64*3/2)
	for i := range frame {
		frame[i] = byte(i)
	}

	var frames int
	for pts := int64(0); pts < 3; pts++ {
		packets, err := h.Submit(frame, pts)
		if err != nil {
			t.Fatalf("Submit %d failed: %v", pts, err)
		}
		for _, pkt := range packets {
			if pkt.Kind == ports.KindFrame {
				frames++
				if len(pkt.Data) == 0 {
					t.Error("frame packet with empty payload")
				}
				if pts == 0 && !pkt.Keyframe {
					t.Error("first frame should be a keyframe")
				}
			}
		}
	}
	if frames == 0 {
		t.Error("expected at least one frame packet")
	}

	if err := h.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Errorf("second Close should be a no-op: %v", err)
	}
	if _, err := h.Submit(frame, 99); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed after Close, got %v", err)
	}
}
