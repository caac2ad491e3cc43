// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"path/filepath"

	"github.com/herbaini/yuvpress/pkg/ports"
)

// Sink saves debug artifacts under a base directory.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new Sink rooted at baseDir.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveSessionJSON saves the resolved session configuration as JSON.
func (s *Sink) SaveSessionJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "session.json")
	return s.fs.WriteFile(path, data)
}

// SaveRawFrame saves one raw input frame.
func (s *Sink) SaveRawFrame(index int, data []byte) error {
	dir := filepath.Join(s.baseDir, "frames")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%06d.yuv", index))
	return s.fs.WriteFile(path, data)
}

// SavePacket saves one encoded packet. Keyframe packets get a marker in
// the file name so they are easy to pick out.
func (s *Sink) SavePacket(index int, pkt ports.Packet) error {
	dir := filepath.Join(s.baseDir, "packets")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	name := fmt.Sprintf("packet-%06d.bin", index)
	if pkt.Keyframe {
		name = fmt.Sprintf("packet-%06d-key.bin", index)
	}
	return s.fs.WriteFile(filepath.Join(dir, name), pkt.Data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
