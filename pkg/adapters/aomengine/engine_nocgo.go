//go:build !cgo

package aomengine

import "github.com/herbaini/yuvpress/pkg/ports"

// Available reports whether libaom support is compiled in.
func Available() bool {
	return false
}

// Name identifies the engine for logs and summaries.
func (e *Engine) Name() string {
	return "libaom/av1"
}

// Open always fails in builds without cgo.
func (e *Engine) Open(cfg ports.EngineConfig) (ports.EngineHandle, error) {
	return nil, ErrNotAvailable
}
