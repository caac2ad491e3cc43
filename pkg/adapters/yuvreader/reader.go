// Package yuvreader reads raw planar 4:2:0 frames from an io.Reader.
package yuvreader

import (
	"errors"
	"io"

	"github.com/herbaini/yuvpress/pkg/ports"
)

// Reader yields fixed-size frames from a byte stream. The stream is expected
// to be a bare concatenation of I420 frames with no container framing.
type Reader struct {
	r io.Reader
}

// New creates a frame source backed by r.
func New(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Read fills buf with the next frame. A clean end of stream on a frame
// boundary reports ReadEmpty; a truncated trailing frame reports ReadPartial.
func (r *Reader) Read(buf []byte) (ports.ReadStatus, error) {
	_, err := io.ReadFull(r.r, buf)
	switch {
	case err == nil:
		return ports.ReadFull, nil
	case errors.Is(err, io.EOF):
		return ports.ReadEmpty, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		return ports.ReadPartial, nil
	default:
		return ports.ReadEmpty, err
	}
}

var _ ports.FrameSource = (*Reader)(nil)
