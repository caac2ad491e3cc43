package summarizer

import (
	"testing"
	"time"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder_WithInput(t *testing.T) {
	summary := NewBuilder().
		WithInput(InputInfo{Path: "clip.yuv", Width: 640, Height: 360, FPS: "30"}).
		Build()

	if summary.Input.Path != "clip.yuv" {
		t.Errorf("expected path 'clip.yuv', got '%s'", summary.Input.Path)
	}
	if summary.Input.Width != 640 || summary.Input.Height != 360 {
		t.Errorf("expected 640x360, got %dx%d", summary.Input.Width, summary.Input.Height)
	}
	if summary.Input.FPS != "30" {
		t.Errorf("expected FPS '30', got '%s'", summary.Input.FPS)
	}
}

func TestBuilder_WithSettings(t *testing.T) {
	settings := Settings{
		Codec:        "vp9",
		Backend:      "libvpx",
		EngineName:   "WebM Project VP9 Encoder",
		Container:    "ivf",
		Pass:         "one",
		Deadline:     "good",
		BitrateKbps:  400,
		FallbackUsed: false,
	}

	summary := NewBuilder().
		WithSettings(settings).
		Build()

	if summary.Settings.Codec != "vp9" {
		t.Errorf("expected Codec 'vp9', got '%s'", summary.Settings.Codec)
	}
	if summary.Settings.BitrateKbps != 400 {
		t.Errorf("expected BitrateKbps 400, got %d", summary.Settings.BitrateKbps)
	}
	if summary.Settings.FallbackUsed {
		t.Error("expected FallbackUsed false")
	}
}

func TestBuilder_WithOutput(t *testing.T) {
	output := OutputInfo{
		Path:      "out.ivf",
		Frames:    10,
		Keyframes: 1,
		Packets:   10,
		FileSize:  4096,
	}

	summary := NewBuilder().
		WithOutput(output).
		Build()

	if summary.Output.Path != "out.ivf" {
		t.Errorf("expected Path 'out.ivf', got '%s'", summary.Output.Path)
	}
	if summary.Output.Frames != 10 {
		t.Errorf("expected Frames 10, got %d", summary.Output.Frames)
	}
	if summary.Output.FileSize != 4096 {
		t.Errorf("expected FileSize 4096, got %d", summary.Output.FileSize)
	}
}

func TestBuilder_Chaining(t *testing.T) {
	summary := NewBuilder().
		WithInput(InputInfo{Path: "-", Width: 64, Height: 64, FPS: "30000/1001"}).
		WithSettings(Settings{Codec: "vp8", Backend: "libvpx"}).
		WithOutput(OutputInfo{Frames: 3}).
		Build()

	if summary.Input.Path != "-" {
		t.Error("input lost in chain")
	}
	if summary.Settings.Codec != "vp8" {
		t.Error("settings lost in chain")
	}
	if summary.Output.Frames != 3 {
		t.Error("output lost in chain")
	}
}
