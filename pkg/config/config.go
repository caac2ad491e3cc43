// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/herbaini/yuvpress/pkg/ports"
	"github.com/herbaini/yuvpress/pkg/session"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for yuvpress.
type Config struct {
	// Input/Output
	InputPath  string `yaml:"input"`
	OutputPath string `yaml:"output"`

	// Stream geometry. FPS is a string so exact rates like
	// "30000/1001" survive without rounding.
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    string `yaml:"fps"`

	// Encoding
	BitrateKbps int    `yaml:"bitrate"`
	Codec       string `yaml:"codec"`
	Container   string `yaml:"container"`
	Pass        string `yaml:"pass"`
	Deadline    string `yaml:"deadline"`
	NoFallback  bool   `yaml:"no_fallback"`

	// Synthetic input
	Pattern       bool `yaml:"pattern"`
	PatternFrames int  `yaml:"pattern_frames"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`

	// Summary
	SummaryPath string `yaml:"summary"`

	// Logging
	LogLevel string `yaml:"log_level"`
	Quiet    bool   `yaml:"quiet"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		FPS:       "30",
		Codec:     "vp8",
		Container: "auto",
		Pass:      "one",
		Deadline:  "realtime",

		PatternFrames: 150,

		DebugDir: "./debug",

		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ParseFPS parses a frame rate given as an integer ("30") or an exact
// fraction ("30000/1001").
func ParseFPS(s string) (ports.Rational, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.Atoi(strings.TrimSpace(num))
		d, err2 := strconv.Atoi(strings.TrimSpace(den))
		if err1 != nil || err2 != nil || n <= 0 || d <= 0 {
			return ports.Rational{}, fmt.Errorf("invalid frame rate %q", s)
		}
		return ports.Rational{Num: n, Den: d}, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return ports.Rational{}, fmt.Errorf("invalid frame rate %q", s)
	}
	return ports.Rational{Num: n, Den: 1}, nil
}

// ParsePass parses a rate-control pass name.
func ParsePass(s string) (ports.PassMode, error) {
	switch s {
	case "one", "":
		return ports.PassOne, nil
	case "first":
		return ports.PassFirst, nil
	case "last":
		return ports.PassLast, nil
	default:
		return ports.PassOne, fmt.Errorf("invalid pass %q (use one, first or last)", s)
	}
}

// ParseDeadline parses an encoding deadline name.
func ParseDeadline(s string) (ports.Deadline, error) {
	switch s {
	case "realtime", "":
		return ports.DeadlineRealtime, nil
	case "good":
		return ports.DeadlineGood, nil
	case "best":
		return ports.DeadlineBest, nil
	default:
		return ports.DeadlineRealtime, fmt.Errorf("invalid deadline %q (use realtime, good or best)", s)
	}
}

// ResolveContainer maps the "auto" container to a concrete one from
// the output file extension.
func (c Config) ResolveContainer() string {
	if c.Container != "" && c.Container != "auto" {
		return c.Container
	}
	if strings.EqualFold(filepath.Ext(c.OutputPath), ".mp4") {
		return "mp4"
	}
	return "ivf"
}

// SessionConfig converts the configuration into a session config. The
// timebase is the inverted frame rate.
func (c Config) SessionConfig() (session.Config, error) {
	fps, err := ParseFPS(c.FPS)
	if err != nil {
		return session.Config{}, err
	}
	pass, err := ParsePass(c.Pass)
	if err != nil {
		return session.Config{}, err
	}
	deadline, err := ParseDeadline(c.Deadline)
	if err != nil {
		return session.Config{}, err
	}

	return session.Config{
		Resolution:  ports.Resolution{Width: c.Width, Height: c.Height},
		Timebase:    fps.Invert(),
		BitrateKbps: c.BitrateKbps,
		Pass:        pass,
		Deadline:    deadline,
	}, nil
}
