// Package mediaprobe identifies the container and codec of media files.
package mediaprobe

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/herbaini/yuvpress/pkg/adapters/ivfsink"
	"github.com/herbaini/yuvpress/pkg/ports"
)

// Container identifies the file format.
type Container string

const (
	ContainerIVF     Container = "ivf"
	ContainerMP4     Container = "mp4"
	ContainerUnknown Container = "unknown"
)

// ErrUnrecognized is returned for files that are neither IVF nor MP4.
var ErrUnrecognized = errors.New("mediaprobe: unrecognized container")

// Info describes a probed file.
type Info struct {
	Container  Container
	Codec      string
	Resolution ports.Resolution

	// Timebase and FrameCount come from the IVF header and stay zero
	// for MP4 files.
	Timebase   ports.Rational
	FrameCount int
}

// DetectFromFile probes the file at path.
func DetectFromFile(path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{Container: ContainerUnknown}, fmt.Errorf("mediaprobe: read file: %w", err)
	}
	return DetectFromBytes(data)
}

// DetectFromBytes probes in-memory file data.
func DetectFromBytes(data []byte) (Info, error) {
	if hdr, err := ivfsink.ParseHeader(data); err == nil {
		return Info{
			Container:  ContainerIVF,
			Codec:      codecName(hdr.FourCC),
			Resolution: ports.Resolution{Width: int(hdr.Width), Height: int(hdr.Height)},
			Timebase:   ports.Rational{Num: int(hdr.TimebaseNum), Den: int(hdr.TimebaseDen)},
			FrameCount: int(hdr.FrameCount),
		}, nil
	}

	mp4File, err := mp4.DecodeFile(bytes.NewReader(data))
	if err != nil {
		return Info{Container: ContainerUnknown}, ErrUnrecognized
	}
	return probeMP4(mp4File)
}

func probeMP4(f *mp4.File) (Info, error) {
	info := Info{Container: ContainerMP4, Codec: "unknown"}

	var traks []*mp4.TrakBox
	if f.IsFragmented() && f.Init != nil && f.Init.Moov != nil {
		traks = f.Init.Moov.Traks
	} else if f.Moov != nil {
		traks = f.Moov.Traks
	}

	for _, trak := range traks {
		codec, res, ok := probeTrack(trak)
		if !ok {
			continue
		}
		info.Codec = codec
		info.Resolution = res
		return info, nil
	}
	return info, fmt.Errorf("mediaprobe: no video track found")
}

func probeTrack(trak *mp4.TrakBox) (string, ports.Resolution, bool) {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
		return "", ports.Resolution{}, false
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return "", ports.Resolution{}, false
	}

	var res ports.Resolution
	if trak.Tkhd != nil {
		res = ports.Resolution{
			Width:  int(trak.Tkhd.Width >> 16),
			Height: int(trak.Tkhd.Height >> 16),
		}
	}

	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		switch child.Type() {
		case "av01":
			return "av1", res, true
		case "vp09":
			return "vp9", res, true
		case "vp08":
			return "vp8", res, true
		case "avc1", "avc3":
			return "h264", res, true
		}
	}
	return "", ports.Resolution{}, false
}

func codecName(fourcc uint32) string {
	switch fourcc {
	case ports.FourCCVP8:
		return "vp8"
	case ports.FourCCVP9:
		return "vp9"
	case ports.FourCCAV1:
		return "av1"
	default:
		return ports.FourCCString(fourcc)
	}
}
