// Package aomengine wraps the libaom AV1 encoder.
package aomengine

import "github.com/herbaini/yuvpress/pkg/ports"

// Reference encode parameters, matching libaom's configuration defaults.
const (
	DefaultWidth       = 320
	DefaultHeight      = 240
	DefaultBitrateKbps = 256
)

// Engine opens libaom AV1 encoder handles.
type Engine struct{}

// New returns the AV1 engine.
func New() *Engine {
	return &Engine{}
}

// FourCC returns the container tag for AV1 streams.
func (e *Engine) FourCC() uint32 {
	return ports.FourCCAV1
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
