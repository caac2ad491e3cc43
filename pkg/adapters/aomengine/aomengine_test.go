package aomengine

import (
	"testing"

	"github.com/herbaini/yuvpress/pkg/ports"
)

func TestEngine_FourCC(t *testing.T) {
	e := New()
	if e.FourCC() != ports.FourCCAV1 {
		t.Errorf("fourcc: got %#x, want %#x", e.FourCC(), ports.FourCCAV1)
	}
	if ports.FourCCString(e.FourCC()) != "AV01" {
		t.Errorf("fourcc string: got %q", ports.FourCCString(e.FourCC()))
	}
}

func TestEngine_Defaults(t *testing.T) {
	d := New().Defaults()
	if d.Width != 320 || d.Height != 240 {
		t.Errorf("default frame size: got %dx%d", d.Width, d.Height)
	}
	if d.BitrateKbps != 256 {
		t.Errorf("default bitrate: got %d", d.BitrateKbps)
	}
}

func TestEngine_Name(t *testing.T) {
	if New().Name() == "" {
		t.Error("expected a non-empty engine name")
	}
}

func TestEngine_OpenRoundTrip(t *testing.T) {
	if !Available() {
		t.Skip("built without libaom")
	}

	e := New()
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
	var frames int
	for pts := int64(0); pts < 3; pts++ {
		packets, err := h.Submit(frame, pts)
		if err != nil {
			t.Fatalf("Submit %d failed: %v", pts, err)
		}
		for _, pkt := range packets {
			if pkt.Kind == ports.KindFrame {
				frames++
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
}
