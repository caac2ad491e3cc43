package testpattern

import (
	"bytes"
	"image"
	"testing"

	"github.com/herbaini/yuvpress/pkg/ports"
)

var testRes = ports.Resolution{Width: 64, Height: 64}

func TestSource_FrameCount(t *testing.T) {
	s := New(testRes, 3)
	buf := make([]byte, testRes.FrameSize())

	for i := 0; i < 3; i++ {
		status, err := s.Read(buf)
		if err != nil {
			t.Fatalf("Read %d failed: %v", i, err)
		}
		if status != ports.ReadFull {
			t.Fatalf("Read %d: expected full, got %s", i, status)
		}
	}

	status, err := s.Read(buf)
	if err != nil || status != ports.ReadEmpty {
		t.Fatalf("expected empty after last frame, got %s, %v", status, err)
	}
	// Stays empty.
	status, _ = s.Read(buf)
	if status != ports.ReadEmpty {
		t.Errorf("expected empty to persist, got %s", status)
	}
}

func TestSource_Deterministic(t *testing.T) {
	a := New(testRes, 5)
	b := New(testRes, 5)
	bufA := make([]byte, testRes.FrameSize())
	bufB := make([]byte, testRes.FrameSize())

	for i := 0; i < 5; i++ {
		if _, err := a.Read(bufA); err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if _, err := b.Read(bufB); err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if !bytes.Equal(bufA, bufB) {
			t.Fatalf("frame %d differs between identical sources", i)
		}
	}
}

func TestSource_FramesDiffer(t *testing.T) {
	s := New(testRes, 2)
	first := make([]byte, testRes.FrameSize())
	second := make([]byte, testRes.FrameSize())

	if _, err := s.Read(first); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if _, err := s.Read(second); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if bytes.Equal(first, second) {
		t.Error("consecutive frames should differ (the block moves)")
	}
}

func TestSource_NotFlat(t *testing.T) {
	s := New(testRes, 1)
	buf := make([]byte, testRes.FrameSize())
	if _, err := s.Read(buf); err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	luma := buf[:testRes.Width*testRes.Height]
	first := luma[0]
	varied := false
	for _, v := range luma {
		if v != first {
			varied = true
			break
		}
	}
	if !varied {
		t.Error("expected a pattern, got a flat luma plane")
	}
}

func TestSource_BufferSizeMismatch(t *testing.T) {
	s := New(testRes, 1)
	if _, err := s.Read(make([]byte, 10)); err == nil {
		t.Fatal("expected error for wrong buffer size")
	}
}

func TestImageToI420_ChromaNeutralOnGray(t *testing.T) {
	// A uniform gray image must produce near-neutral chroma.
	res := ports.Resolution{Width: 16, Height: 16}
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = 128
		img.Pix[i+1] = 128
		img.Pix[i+2] = 128
		img.Pix[i+3] = 255
	}

	buf := make([]byte, res.FrameSize())
	imageToI420(img, res, buf)

	for i := 16 * 16; i < len(buf); i++ {
		if buf[i] < 126 || buf[i] > 130 {
			t.Fatalf("chroma byte %d out of neutral range: %d", i, buf[i])
		}
	}
}
