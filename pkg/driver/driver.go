// Package driver runs the read, encode, write loop of one encode job.
package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/herbaini/yuvpress/pkg/ports"
	"github.com/herbaini/yuvpress/pkg/session"
)

// Config contains all configuration for one encode run.
type Config struct {
	// Session configures the encode session itself.
	Session session.Config

	// OutputPath is where the finished container file is written.
	OutputPath string

	// Progress receives one character per engine packet, "K" for
	// keyframes and "." otherwise. Nil disables progress output.
	Progress io.Writer
}

// Driver owns one encode run from raw frames to a container file.
type Driver struct {
	engine ports.CodecEngine
	source ports.FrameSource
	sink   ports.PacketSink
	debug  ports.DebugSink
	fs     ports.FileSystem
	logger ports.Logger
}

// New creates a new Driver.
func New(
	engine ports.CodecEngine,
	source ports.FrameSource,
	sink ports.PacketSink,
	debug ports.DebugSink,
	fs ports.FileSystem,
	logger ports.Logger,
) *Driver {
	return &Driver{
		engine: engine,
		source: source,
		sink:   sink,
		debug:  debug,
		fs:     fs,
		logger: logger.WithComponent("driver"),
	}
}

// Run executes the complete encode: it sets up a session, pumps frames
// from the source through the engine into the sink, finalizes the
// session and writes the container file. Any component error aborts
// the run; the engine handle is released on every path past a
// successful setup.
func (d *Driver) Run(ctx context.Context, cfg Config) (RunResult, error) {
	d.logger.Info("Starting encode")
	d.logger.Info("Using engine %s", d.engine.Name())

	sess := session.New(d.engine, d.logger.WithComponent("session"))
	if err := sess.Setup(cfg.Session); err != nil {
		d.logger.Error("Failed to set up encoder: %s", err)
		return RunResult{}, fmt.Errorf("setup session: %w", err)
	}

	// Release the engine handle on early returns. The success path
	// finalizes explicitly; this guard covers everything after it.
	finalized := false
	defer func() {
		if finalized {
			return
		}
		if _, err := sess.Finalize(); err != nil {
			d.logger.Warn("Failed to release encoder: %s", err)
		}
	}()

	// Save resolved session config for debugging
	if d.debug.Enabled() {
		if data, err := json.MarshalIndent(sess.EngineConfig(), "", "  "); err == nil {
			d.debug.SaveSessionJSON(data)
		}
	}

	if err := d.sink.Begin(ports.StreamInfo{
		Resolution: cfg.Session.Resolution,
		Timebase:   cfg.Session.Timebase,
		FourCC:     d.engine.FourCC(),
		Pass:       cfg.Session.Pass,
	}); err != nil {
		d.logger.Error("Failed to start output stream: %s", err)
		return RunResult{}, fmt.Errorf("begin sink: %w", err)
	}

	var result RunResult

	// One frame buffer for the whole run; the source overwrites it on
	// every read, so packets and debug copies must not alias it.
	buf := make([]byte, cfg.Session.Resolution.FrameSize())

reading:
	for {
		if err := ctx.Err(); err != nil {
			return RunResult{}, err
		}

		status, err := d.source.Read(buf)
		if err != nil {
			d.logger.Error("Failed to read frame: %s", err)
			return RunResult{}, fmt.Errorf("read frame: %w", err)
		}
		switch status {
		case ports.ReadEmpty:
			break reading
		case ports.ReadPartial:
			d.logger.Warn("Discarding trailing partial frame; check width and height")
			break reading
		}

		if d.debug.Enabled() {
			d.debug.SaveRawFrame(sess.FrameCount(), buf)
		}

		packets, err := sess.Encode(buf)
		if err != nil {
			d.logger.Error("Failed to encode frame %d: %s", sess.FrameCount(), err)
			return RunResult{}, fmt.Errorf("encode frame: %w", err)
		}

		for _, pkt := range packets {
			if d.debug.Enabled() {
				d.debug.SavePacket(result.Packets, pkt)
			}
			result.Packets++

			mark := "."
			if pkt.Kind == ports.KindFrame {
				if err := d.sink.WritePacket(pkt); err != nil {
					d.logger.Error("Failed to write packet: %s", err)
					return RunResult{}, fmt.Errorf("write packet: %w", err)
				}
				if pkt.Keyframe {
					result.Keyframes++
					mark = "K"
				}
			}
			d.progress(cfg.Progress, mark)
		}
	}

	if result.Packets > 0 {
		d.progress(cfg.Progress, "\n")
	}

	frames, err := sess.Finalize()
	finalized = true
	if err != nil {
		d.logger.Error("Failed to release encoder: %s", err)
		return RunResult{}, fmt.Errorf("finalize session: %w", err)
	}

	data, err := d.sink.End(frames)
	if err != nil {
		d.logger.Error("Failed to finalize output: %s", err)
		return RunResult{}, fmt.Errorf("end sink: %w", err)
	}

	if err := d.fs.WriteFile(cfg.OutputPath, data); err != nil {
		d.logger.Error("Failed to write output: %s", err)
		return RunResult{}, fmt.Errorf("write output: %w", err)
	}

	d.logger.Info("Processed %d frames", frames)
	d.logger.Info("Output saved to %s", cfg.OutputPath)

	result.Frames = frames
	result.ContainerBytes = int64(len(data))
	result.BitrateKbps = sess.EngineConfig().BitrateKbps
	result.OutputPath = cfg.OutputPath
	return result, nil
}

func (d *Driver) progress(w io.Writer, s string) {
	if w == nil {
		return
	}
	fmt.Fprint(w, s)
}

// RunResult contains the results of an encode run for summary
// generation.
type RunResult struct {
	// Frames is the number of raw frames accepted by the engine.
	Frames int

	// Keyframes is the number of keyframe packets written.
	Keyframes int

	// Packets is the total number of packets the engine produced,
	// including non-frame packets that were not written.
	Packets int

	// ContainerBytes is the size of the written container file.
	ContainerBytes int64

	// BitrateKbps is the resolved target bitrate the engine ran with.
	BitrateKbps int

	// OutputPath is where the container file was written.
	OutputPath string
}
