package smartengine

import (
	"errors"
	"testing"

	"github.com/herbaini/yuvpress/pkg/mocks"
	"github.com/herbaini/yuvpress/pkg/ports"
)

// setAvailability swaps the library hooks for one test.
func setAvailability(t *testing.T, vpx, aom bool) {
	t.Helper()
	origVPX, origAOM := vpxAvailable, aomAvailable
	vpxAvailable = func() bool { return vpx }
	aomAvailable = func() bool { return aom }
	t.Cleanup(func() {
		vpxAvailable = origVPX
		aomAvailable = origAOM
	})
}

func TestParseCodec(t *testing.T) {
	for _, name := range []string{"vp8", "vp9", "av1"} {
		if _, err := ParseCodec(name); err != nil {
			t.Errorf("ParseCodec(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseCodec("h265"); !errors.Is(err, ErrUnknownCodec) {
		t.Errorf("expected ErrUnknownCodec, got %v", err)
	}
}

func TestNew_Selection(t *testing.T) {
	tests := []struct {
		name         string
		preferred    Codec
		vpx, aom     bool
		fallback     bool
		wantCodec    Codec
		wantBackend  Backend
		wantFallback bool
		wantErr      error
	}{
		{
			name:      "vp8 with libvpx",
			preferred: CodecVP8, vpx: true, aom: true, fallback: true,
			wantCodec: CodecVP8, wantBackend: BackendLibvpx,
		},
		{
			name:      "vp9 with libvpx",
			preferred: CodecVP9, vpx: true, aom: false, fallback: true,
			wantCodec: CodecVP9, wantBackend: BackendLibvpx,
		},
		{
			name:      "av1 with libaom",
			preferred: CodecAV1, vpx: false, aom: true, fallback: true,
			wantCodec: CodecAV1, wantBackend: BackendLibaom,
		},
		{
			name:      "vp8 falls back to av1",
			preferred: CodecVP8, vpx: false, aom: true, fallback: true,
			wantCodec: CodecAV1, wantBackend: BackendLibaom, wantFallback: true,
		},
		{
			name:      "av1 falls back to vp8",
			preferred: CodecAV1, vpx: true, aom: false, fallback: true,
			wantCodec: CodecVP8, wantBackend: BackendLibvpx, wantFallback: true,
		},
		{
			name:      "vp8 without fallback",
			preferred: CodecVP8, vpx: false, aom: true, fallback: false,
			wantErr: ErrNoEngineAvailable,
		},
		{
			name:      "av1 without fallback",
			preferred: CodecAV1, vpx: true, aom: false, fallback: false,
			wantErr: ErrNoEngineAvailable,
		},
		{
			name:      "nothing available",
			preferred: CodecVP9, vpx: false, aom: false, fallback: true,
			wantErr: ErrNoEngineAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setAvailability(t, tt.vpx, tt.aom)

			engine, info, err := New(tt.preferred, Options{AllowFallback: tt.fallback})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if engine == nil {
				t.Fatal("expected an engine")
			}
			if info.Codec != tt.wantCodec {
				t.Errorf("codec: got %s, want %s", info.Codec, tt.wantCodec)
			}
			if info.Backend != tt.wantBackend {
				t.Errorf("backend: got %s, want %s", info.Backend, tt.wantBackend)
			}
			if info.RequestedCodec != tt.preferred {
				t.Errorf("requested codec: got %s, want %s", info.RequestedCodec, tt.preferred)
			}
			if info.FallbackUsed != tt.wantFallback {
				t.Errorf("fallback used: got %v, want %v", info.FallbackUsed, tt.wantFallback)
			}
		})
	}
}

func TestNew_FallbackWarning(t *testing.T) {
	setAvailability(t, false, true)

	logger := mocks.NewLogger()
	_, info, err := New(CodecVP8, Options{AllowFallback: true, Logger: logger})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !info.FallbackUsed {
		t.Error("expected fallback")
	}
	if len(logger.WarnMessages) != 1 {
		t.Errorf("expected one warning, got %v", logger.WarnMessages)
	}
}

func TestNew_UnknownCodec(t *testing.T) {
	setAvailability(t, true, true)

	if _, _, err := New(Codec("mpeg2"), Options{}); !errors.Is(err, ErrUnknownCodec) {
		t.Fatalf("expected ErrUnknownCodec, got %v", err)
	}
}

func TestNew_SelectedEngineFourCC(t *testing.T) {
	setAvailability(t, true, true)

	engine, _, err := New(CodecVP9, Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if engine.FourCC() != ports.FourCCVP9 {
		t.Errorf("fourcc: got %#x", engine.FourCC())
	}
}
