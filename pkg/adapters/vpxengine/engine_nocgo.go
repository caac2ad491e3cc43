//go:build !cgo

package vpxengine

import "github.com/herbaini/yuvpress/pkg/ports"

// Available reports whether libvpx support is compiled in.
func Available() bool {
	return false
}

// Name identifies the engine for logs and summaries.
func (e *Engine) Name() string {
	return "libvpx/" + string(e.codec)
}

// Open always fails in builds without cgo.
func (e *Engine) Open(cfg ports.EngineConfig) (ports.EngineHandle, error) {
	return nil, ErrNotAvailable
}
