// Package vpxengine wraps the libvpx VP8 and VP9 encoders.
package vpxengine

import (
	"fmt"

	"github.com/herbaini/yuvpress/pkg/ports"
)

// Codec selects the libvpx encoder interface.
type Codec string

const (
	CodecVP8 Codec = "vp8"
	CodecVP9 Codec = "vp9"
)

// Reference encode parameters, matching what libvpx ships as its
// configuration defaults. Target bitrates are interpreted at this frame
// size and scaled proportionally for other resolutions.
const (
	DefaultWidth       = 320
	DefaultHeight      = 240
	DefaultBitrateKbps = 256
)

// Engine opens libvpx encoder handles for one codec.
type Engine struct {
	codec Codec
}

// New returns an engine for the given codec.
func New(codec Codec) (*Engine, error) {
	switch codec {
	case CodecVP8, CodecVP9:
		return &Engine{codec: codec}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codec)
	}
}

// FourCC returns the container tag for the engine's codec.
func (e *Engine) FourCC() uint32 {
	if e.codec == CodecVP9 {
		return ports.FourCCVP9
	}
	return ports.FourCCVP8
}

// Defaults returns the reference frame size and bitrate.
func (e *Engine) Defaults() ports.EngineDefaults {
	return ports.EngineDefaults{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		BitrateKbps: DefaultBitrateKbps,
	}
}

var _ ports.CodecEngine = (*Engine)(nil)
