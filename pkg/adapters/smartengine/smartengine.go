// Package smartengine selects a codec engine, with fallback to another
// codec when the preferred library is not compiled in.
package smartengine

import (
	"errors"
	"fmt"

	"github.com/herbaini/yuvpress/pkg/adapters/aomengine"
	"github.com/herbaini/yuvpress/pkg/adapters/vpxengine"
	"github.com/herbaini/yuvpress/pkg/ports"
)

// Codec identifies a requestable codec.
type Codec string

const (
	// CodecVP8 is VP8 via libvpx.
	CodecVP8 Codec = "vp8"
	// CodecVP9 is VP9 via libvpx.
	CodecVP9 Codec = "vp9"
	// CodecAV1 is AV1 via libaom.
	CodecAV1 Codec = "av1"
)

// Backend identifies the library providing the engine.
type Backend string

const (
	BackendLibvpx Backend = "libvpx"
	BackendLibaom Backend = "libaom"
)

// Info describes the outcome of engine selection.
type Info struct {
	// Codec is the codec actually selected.
	Codec Codec
	// Backend is the library backing the engine.
	Backend Backend
	// RequestedCodec is the codec that was originally requested.
	RequestedCodec Codec
	// FallbackUsed indicates whether a fallback occurred.
	FallbackUsed bool
}

// Options configures engine selection.
type Options struct {
	// AllowFallback permits substituting another codec when the library
	// backing the requested one is not compiled in.
	AllowFallback bool
	// Logger receives fallback warnings.
	Logger ports.Logger
}

var (
	// ErrNoEngineAvailable is returned when no usable engine exists for
	// the request.
	ErrNoEngineAvailable = errors.New("smartengine: no codec engine available")

	// ErrUnknownCodec is returned for unrecognized codec names.
	ErrUnknownCodec = errors.New("smartengine: unknown codec")
)

// Availability hooks, swappable in tests.
var (
	vpxAvailable = vpxengine.Available
	aomAvailable = aomengine.Available
)

// ParseCodec validates a codec name from configuration.
func ParseCodec(name string) (Codec, error) {
	switch Codec(name) {
	case CodecVP8, CodecVP9, CodecAV1:
		return Codec(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}

// New selects an engine for the preferred codec.
//
// VP8 and VP9 come from libvpx, AV1 from libaom. When the backing
// library is missing and AllowFallback is set, the other library's
// codec is substituted with a warning.
func New(preferred Codec, opts Options) (ports.CodecEngine, Info, error) {
	info := Info{RequestedCodec: preferred}

	switch preferred {
	case CodecVP8, CodecVP9:
		if vpxAvailable() {
			engine, err := vpxengine.New(vpxengine.Codec(preferred))
			if err != nil {
				return nil, Info{}, err
			}
			info.Codec = preferred
			info.Backend = BackendLibvpx
			return engine, info, nil
		}
		if opts.AllowFallback && aomAvailable() {
			warn(opts, "%s encoder not available, falling back to AV1", preferred)
			info.Codec = CodecAV1
			info.Backend = BackendLibaom
			info.FallbackUsed = true
			return aomengine.New(), info, nil
		}
		return nil, Info{}, ErrNoEngineAvailable

	case CodecAV1:
		if aomAvailable() {
			info.Codec = CodecAV1
			info.Backend = BackendLibaom
			return aomengine.New(), info, nil
		}
		if opts.AllowFallback && vpxAvailable() {
			warn(opts, "AV1 encoder not available, falling back to VP8")
			engine, err := vpxengine.New(vpxengine.CodecVP8)
			if err != nil {
				return nil, Info{}, err
			}
			info.Codec = CodecVP8
			info.Backend = BackendLibvpx
			info.FallbackUsed = true
			return engine, info, nil
		}
		return nil, Info{}, ErrNoEngineAvailable

	default:
		return nil, Info{}, fmt.Errorf("%w: %q", ErrUnknownCodec, preferred)
	}
}

func warn(opts Options, msg string, args ...interface{}) {
	if opts.Logger != nil {
		opts.Logger.WithComponent("smartengine").Warn(msg, args...)
	}
}

// IsVPXAvailable checks whether libvpx engines can be opened.
func IsVPXAvailable() bool {
	return vpxAvailable()
}

// IsAOMAvailable checks whether the libaom engine can be opened.
func IsAOMAvailable() bool {
	return aomAvailable()
}
