// Package session implements the lifecycle of one encode session
// around a codec engine handle.
package session

import (
	"fmt"

	"github.com/herbaini/yuvpress/pkg/ports"
)

// MinDimension is the smallest frame width or height the engines accept.
const MinDimension = 16

// Config describes one encode session.
type Config struct {
	// Resolution of every incoming frame. Both dimensions must be even
	// and at least MinDimension.
	Resolution ports.Resolution

	// Timebase is the duration of one timestamp unit as a fraction of
	// a second.
	Timebase ports.Rational

	// BitrateKbps is the base target bitrate at the engine's default
	// frame size; it is scaled to the configured resolution. Zero
	// selects the engine's default bitrate as the base.
	BitrateKbps int

	// Pass selects the rate-control pass.
	Pass ports.PassMode

	// Deadline selects the engine's per-frame time budget.
	Deadline ports.Deadline
}

// Session drives a single engine handle through setup, per-frame
// encoding and release. Sessions are single-use and not safe for
// concurrent access.
type Session struct {
	engine ports.CodecEngine
	logger ports.Logger

	state  State
	handle ports.EngineHandle
	cfg    ports.EngineConfig
	frames int
}

// New creates a Session in the uninitialized state.
func New(engine ports.CodecEngine, logger ports.Logger) *Session {
	return &Session{
		engine: engine,
		logger: logger,
		state:  StateUninitialized,
	}
}

// Setup validates cfg, resolves the target bitrate and opens the
// engine. On failure the session stays uninitialized and holds no
// engine resources.
func (s *Session) Setup(cfg Config) error {
	if s.state != StateUninitialized {
		return fmt.Errorf("setup in state %s: %w", s.state, ErrInvalidState)
	}
	if err := validateResolution(cfg.Resolution); err != nil {
		return err
	}
	if cfg.Timebase.Num <= 0 || cfg.Timebase.Den <= 0 {
		return fmt.Errorf("timebase %s: %w", cfg.Timebase, ErrInvalidTimebase)
	}

	engineCfg := ports.EngineConfig{
		Width:       cfg.Resolution.Width,
		Height:      cfg.Resolution.Height,
		TimebaseNum: cfg.Timebase.Num,
		TimebaseDen: cfg.Timebase.Den,
		BitrateKbps: resolveBitrate(cfg, s.engine.Defaults()),
		Pass:        cfg.Pass,
		Deadline:    cfg.Deadline,
	}

	handle, err := s.engine.Open(engineCfg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEngineInit, err)
	}

	s.handle = handle
	s.cfg = engineCfg
	s.frames = 0
	s.state = StateReady
	s.logger.Debug("Session ready: %s at %d kbps", cfg.Resolution, engineCfg.BitrateKbps)
	return nil
}

// Encode submits one frame with the current frame index as its
// timestamp and returns every packet the engine produced for the call.
// The frame counter advances exactly once per successful call, whether
// or not packets came back. An engine failure is fatal; the session
// stays ready only so Finalize can still release the handle.
func (s *Session) Encode(frame []byte) ([]ports.Packet, error) {
	if s.state != StateReady {
		return nil, fmt.Errorf("encode in state %s: %w", s.state, ErrInvalidState)
	}
	if want := s.cfg.Width * s.cfg.Height * 3 / 2; len(frame) != want {
		return nil, fmt.Errorf("frame is %d bytes, want %d: %w", len(frame), want, ErrFrameSize)
	}

	packets, err := s.handle.Submit(frame, int64(s.frames))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	for _, pkt := range packets {
		if pkt.Kind == ports.KindFrame {
			continue
		}
		if pkt.Kind == ports.KindStats && s.cfg.Pass == ports.PassFirst {
			continue
		}
		s.logger.Warn("Unexpected %s packet from engine", pkt.Kind)
	}
	s.frames++
	return packets, nil
}

// Finalize releases the engine handle and returns the number of frames
// encoded. The session reaches the finalized state even when the
// release reports an error; release is never retried.
func (s *Session) Finalize() (int, error) {
	if s.state != StateReady {
		return 0, fmt.Errorf("finalize in state %s: %w", s.state, ErrInvalidState)
	}

	err := s.handle.Close()
	s.handle = nil
	s.state = StateFinalized
	if err != nil {
		return s.frames, fmt.Errorf("%w: %v", ErrFinalize, err)
	}
	s.logger.Debug("Session finalized after %d frames", s.frames)
	return s.frames, nil
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	return s.state
}

// FrameCount returns the number of frames accepted so far.
func (s *Session) FrameCount() int {
	return s.frames
}

// EngineConfig returns the resolved configuration the engine was
// opened with. Only meaningful after a successful Setup.
func (s *Session) EngineConfig() ports.EngineConfig {
	return s.cfg
}

func validateResolution(res ports.Resolution) error {
	if res.Width < MinDimension || res.Height < MinDimension ||
		res.Width%2 != 0 || res.Height%2 != 0 {
		return fmt.Errorf("%s: %w", res, ErrInvalidResolution)
	}
	return nil
}

// resolveBitrate keeps the base rate's bits-per-pixel intent: the base
// is interpreted at the engine's default frame size and scaled by the
// ratio of configured pixels to default pixels.
func resolveBitrate(cfg Config, def ports.EngineDefaults) int {
	base := cfg.BitrateKbps
	if base <= 0 {
		base = def.BitrateKbps
	}
	if def.Width <= 0 || def.Height <= 0 {
		return base
	}
	return cfg.Resolution.PixelCount() * base / (def.Width * def.Height)
}
