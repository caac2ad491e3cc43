// Package summarizer provides summary generation for encode results.
package summarizer

import "time"

// Summary contains all data collected during an encode run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Frame source information
	Input InputInfo

	// Encode settings
	Settings Settings

	// Output file details
	Output OutputInfo
}

// InputInfo describes the frame source.
type InputInfo struct {
	// Path is the input file path, "-" for stdin, or "pattern" for the
	// synthetic source.
	Path   string
	Width  int
	Height int
	// FPS is the frame rate as given, e.g. "30" or "30000/1001".
	FPS string
}

// Settings contains the encode configuration.
type Settings struct {
	Codec      string
	Backend    string
	EngineName string
	Container  string
	Pass       string
	Deadline   string

	// BitrateKbps is the resolved target bitrate.
	BitrateKbps int

	// FallbackUsed indicates the codec was substituted.
	FallbackUsed bool
}

// OutputInfo contains information about the produced file.
type OutputInfo struct {
	Path      string
	Frames    int
	Keyframes int
	Packets   int
	FileSize  int64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithInput sets frame source information.
func (b *Builder) WithInput(input InputInfo) *Builder {
	b.summary.Input = input
	return b
}

// WithSettings sets encode settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithOutput sets output file information.
func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Output = output
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
