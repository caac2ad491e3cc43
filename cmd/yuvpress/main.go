// Package main provides the CLI entry point for yuvpress.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/herbaini/yuvpress/pkg/adapters/filesink"
	"github.com/herbaini/yuvpress/pkg/adapters/ivfsink"
	"github.com/herbaini/yuvpress/pkg/adapters/logger"
	"github.com/herbaini/yuvpress/pkg/adapters/mediaprobe"
	"github.com/herbaini/yuvpress/pkg/adapters/mp4sink"
	"github.com/herbaini/yuvpress/pkg/adapters/nullsink"
	"github.com/herbaini/yuvpress/pkg/adapters/osfilesystem"
	"github.com/herbaini/yuvpress/pkg/adapters/smartengine"
	"github.com/herbaini/yuvpress/pkg/adapters/testpattern"
	"github.com/herbaini/yuvpress/pkg/adapters/yuvreader"
	"github.com/herbaini/yuvpress/pkg/config"
	"github.com/herbaini/yuvpress/pkg/driver"
	"github.com/herbaini/yuvpress/pkg/ports"
	"github.com/herbaini/yuvpress/pkg/summarizer"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "yuvpress",
		Usage:   l10n.T("Compress raw 4:2:0 video streams into IVF or MP4 files"),
		Version: version,
		Commands: []*cli.Command{
			encodeCommand(),
			inspectCommand(),
			versionCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func encodeCommand() *cli.Command {
	defaults := config.Defaults()

	return &cli.Command{
		Name:      "encode",
		Usage:     l10n.T("Encode a raw video stream into a container file"),
		ArgsUsage: "[input path, - for stdin]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Output file path (.ivf or .mp4)")},
			&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Usage: l10n.T("Frame width in pixels")},
			&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Usage: l10n.T("Frame height in pixels")},
			&cli.StringFlag{Name: "fps", Value: defaults.FPS, Usage: l10n.T("Frame rate, integer or fraction (e.g. 30000/1001)")},
			&cli.IntFlag{Name: "bitrate", Aliases: []string{"b"}, Usage: l10n.T("Base target bitrate in kbps, scaled by frame size")},
			&cli.StringFlag{Name: "codec", Aliases: []string{"c"}, Value: defaults.Codec, Usage: l10n.T("Codec (vp8, vp9 or av1)")},
			&cli.StringFlag{Name: "container", Value: defaults.Container, Usage: l10n.T("Container (auto, ivf or mp4)")},
			&cli.StringFlag{Name: "pass", Value: defaults.Pass, Usage: l10n.T("Rate-control pass (one, first or last)")},
			&cli.StringFlag{Name: "deadline", Value: defaults.Deadline, Usage: l10n.T("Encoding deadline (realtime, good or best)")},
			&cli.BoolFlag{Name: "no-fallback", Usage: l10n.T("Fail instead of falling back to another codec")},
			&cli.BoolFlag{Name: "pattern", Usage: l10n.T("Encode a built-in test pattern instead of reading input")},
			&cli.IntFlag{Name: "frames", Value: defaults.PatternFrames, Usage: l10n.T("Number of test pattern frames")},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Enable debug output")},
			&cli.StringFlag{Name: "debug-dir", Value: defaults.DebugDir, Usage: l10n.T("Directory for debug output")},
			&cli.StringFlag{Name: "summary", Usage: l10n.T("Write a Markdown summary to this path")},
			&cli.StringFlag{Name: "config", Usage: l10n.T("Load settings from a YAML file")},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: defaults.LogLevel, Usage: l10n.T("Log level (debug, info, warn, error)")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all output")},
		},
		Action: runEncode,
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     l10n.T("Show container, codec and stream details of a media file"),
		ArgsUsage: "[file]",
		Action:    runInspect,
	}
}

func runEncode(c *cli.Context) error {
	cfg, err := buildEncodeConfig(c)
	if err != nil {
		return err
	}

	// Create logger
	var log ports.Logger
	if cfg.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Interrupted, shutting down...")
		cancel()
	}()

	// Select codec engine
	codec, err := smartengine.ParseCodec(cfg.Codec)
	if err != nil {
		return err
	}
	engine, selection, err := smartengine.New(codec, smartengine.Options{
		AllowFallback: !cfg.NoFallback,
		Logger:        log,
	})
	if err != nil {
		return err
	}

	// Create frame source
	source, closeSource, err := buildSource(cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	// Create packet sink
	container := cfg.ResolveContainer()
	var sink ports.PacketSink
	switch container {
	case "ivf":
		sink = ivfsink.New()
	case "mp4":
		sink = mp4sink.New()
	default:
		return fmt.Errorf("unknown container %q (use auto, ivf or mp4)", container)
	}

	fs := osfilesystem.New()

	// Create debug sink
	var debug ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		debug = filesink.New(cfg.DebugDir, fs)
	} else {
		debug = nullsink.New()
	}

	sessionCfg, err := cfg.SessionConfig()
	if err != nil {
		return err
	}

	var progress io.Writer
	if !cfg.Quiet {
		progress = os.Stdout
	}

	d := driver.New(engine, source, sink, debug, fs, log)
	result, err := d.Run(ctx, driver.Config{
		Session:    sessionCfg,
		OutputPath: cfg.OutputPath,
		Progress:   progress,
	})
	if err != nil {
		return err
	}

	if cfg.SummaryPath != "" {
		writeSummary(cfg, selection, engine.Name(), container, result, fs, log)
	}
	return nil
}

// buildEncodeConfig merges defaults, an optional config file, command
// line flags and the positional input argument, in that order.
func buildEncodeConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()

	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if c.IsSet("output") {
		cfg.OutputPath = c.String("output")
	}
	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Height = c.Int("height")
	}
	if c.IsSet("fps") {
		cfg.FPS = c.String("fps")
	}
	if c.IsSet("bitrate") {
		cfg.BitrateKbps = c.Int("bitrate")
	}
	if c.IsSet("codec") {
		cfg.Codec = c.String("codec")
	}
	if c.IsSet("container") {
		cfg.Container = c.String("container")
	}
	if c.IsSet("pass") {
		cfg.Pass = c.String("pass")
	}
	if c.IsSet("deadline") {
		cfg.Deadline = c.String("deadline")
	}
	if c.IsSet("no-fallback") {
		cfg.NoFallback = c.Bool("no-fallback")
	}
	if c.IsSet("pattern") {
		cfg.Pattern = c.Bool("pattern")
	}
	if c.IsSet("frames") {
		cfg.PatternFrames = c.Int("frames")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("summary") {
		cfg.SummaryPath = c.String("summary")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("quiet") {
		cfg.Quiet = c.Bool("quiet")
	}

	if input := c.Args().First(); input != "" {
		cfg.InputPath = input
	}

	if cfg.OutputPath == "" {
		return config.Config{}, fmt.Errorf("output path is required (use --output)")
	}
	if !cfg.Pattern && cfg.InputPath == "" {
		return config.Config{}, fmt.Errorf("input path is required (file path, or - for stdin)")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return config.Config{}, fmt.Errorf("width and height are required (use --width and --height)")
	}

	return cfg, nil
}

// buildSource returns the frame source and a release function for it.
func buildSource(cfg config.Config) (ports.FrameSource, func(), error) {
	res := ports.Resolution{Width: cfg.Width, Height: cfg.Height}

	if cfg.Pattern {
		return testpattern.New(res, cfg.PatternFrames), func() {}, nil
	}
	if cfg.InputPath == "-" {
		return yuvreader.New(os.Stdin), func() {}, nil
	}

	f, err := os.Open(cfg.InputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return yuvreader.New(f), func() { f.Close() }, nil
}

func writeSummary(
	cfg config.Config,
	selection smartengine.Info,
	engineName string,
	container string,
	result driver.RunResult,
	fs ports.FileSystem,
	log ports.Logger,
) {
	inputPath := cfg.InputPath
	if cfg.Pattern {
		inputPath = "pattern"
	}

	summary := summarizer.NewBuilder().
		WithInput(summarizer.InputInfo{
			Path:   inputPath,
			Width:  cfg.Width,
			Height: cfg.Height,
			FPS:    cfg.FPS,
		}).
		WithSettings(summarizer.Settings{
			Codec:        string(selection.Codec),
			Backend:      string(selection.Backend),
			EngineName:   engineName,
			Container:    container,
			Pass:         cfg.Pass,
			Deadline:     cfg.Deadline,
			BitrateKbps:  result.BitrateKbps,
			FallbackUsed: selection.FallbackUsed,
		}).
		WithOutput(summarizer.OutputInfo{
			Path:      result.OutputPath,
			Frames:    result.Frames,
			Keyframes: result.Keyframes,
			Packets:   result.Packets,
			FileSize:  result.ContainerBytes,
		}).
		Build()

	writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(), fs)
	if err := writer.Write(cfg.SummaryPath, summary); err != nil {
		log.Warn("Failed to write summary: %s", err)
		return
	}
	log.Info("Summary saved to %s", cfg.SummaryPath)
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Println(l10n.F("yuvpress version %s", version))
			return nil
		},
	}
}

func runInspect(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("file path is required")
	}

	info, err := mediaprobe.DetectFromFile(path)
	if err != nil {
		return err
	}

	fmt.Println(l10n.F("Container: %s", info.Container))
	fmt.Println(l10n.F("Codec: %s", info.Codec))
	fmt.Println(l10n.F("Resolution: %s", info.Resolution))
	if info.Container == mediaprobe.ContainerIVF {
		fmt.Println(l10n.F("Timebase: %s", info.Timebase))
		fmt.Println(l10n.F("Frames: %d", info.FrameCount))
	}
	return nil
}
