package summarizer

import (
	"fmt"
	"strings"
)

// NewMarkdownFormatter returns a Formatter that renders a Summary as a
// Markdown document with Input, Settings and Output sections.
func NewMarkdownFormatter() Formatter {
	return FormatFunc(formatMarkdown)
}

func formatMarkdown(s *Summary) string {
	var b strings.Builder

	b.WriteString("# Encode Summary\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", s.GeneratedAt.Format("2006-01-02 15:04:05")))

	b.WriteString("## Input\n\n")
	writeTableHeader(&b)
	writeRow(&b, "Source", s.Input.Path)
	writeRow(&b, "Resolution", fmt.Sprintf("%dx%d", s.Input.Width, s.Input.Height))
	writeRow(&b, "Frame rate", s.Input.FPS)
	b.WriteString("\n")

	b.WriteString("## Settings\n\n")
	writeTableHeader(&b)
	codec := s.Settings.Codec
	if s.Settings.FallbackUsed {
		codec += " (fallback)"
	}
	writeRow(&b, "Codec", codec)
	writeRow(&b, "Backend", s.Settings.Backend)
	writeRow(&b, "Engine", s.Settings.EngineName)
	writeRow(&b, "Container", s.Settings.Container)
	writeRow(&b, "Pass", s.Settings.Pass)
	writeRow(&b, "Deadline", s.Settings.Deadline)
	writeRow(&b, "Target bitrate", fmt.Sprintf("%d kbps", s.Settings.BitrateKbps))
	b.WriteString("\n")

	b.WriteString("## Output\n\n")
	writeTableHeader(&b)
	writeRow(&b, "File", s.Output.Path)
	writeRow(&b, "Frames", fmt.Sprintf("%d", s.Output.Frames))
	writeRow(&b, "Keyframes", fmt.Sprintf("%d", s.Output.Keyframes))
	writeRow(&b, "Packets", fmt.Sprintf("%d", s.Output.Packets))
	writeRow(&b, "File size", formatBytes(s.Output.FileSize))

	return b.String()
}

func writeTableHeader(b *strings.Builder) {
	b.WriteString("| Item | Value |\n")
	b.WriteString("|------|-------|\n")
}

func writeRow(b *strings.Builder, item, value string) {
	b.WriteString(fmt.Sprintf("| %s | %s |\n", item, value))
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.2f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
