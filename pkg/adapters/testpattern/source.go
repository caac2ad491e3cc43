// Package testpattern generates synthetic I420 frames, so encode runs
// need no input file.
package testpattern

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/herbaini/yuvpress/pkg/ports"
)

// Frames are rendered oversampled and downscaled, which smooths the
// edges of the moving block into realistic gradients.
const oversample = 2

// Source produces a fixed number of color-bar frames with one moving
// block. Output is a pure function of the frame index.
type Source struct {
	res   ports.Resolution
	total int
	index int
}

// New creates a source that yields total frames at the given resolution.
func New(res ports.Resolution, total int) *Source {
	if total < 0 {
		total = 0
	}
	return &Source{res: res, total: total}
}

// Read renders the next frame into buf.
func (s *Source) Read(buf []byte) (ports.ReadStatus, error) {
	if len(buf) != s.res.FrameSize() {
		return ports.ReadEmpty, fmt.Errorf("testpattern: buffer is %d bytes, want %d", len(buf), s.res.FrameSize())
	}
	if s.index >= s.total {
		return ports.ReadEmpty, nil
	}

	big := s.render(s.index)
	small := image.NewRGBA(image.Rect(0, 0, s.res.Width, s.res.Height))
	draw.CatmullRom.Scale(small, small.Bounds(), big, big.Bounds(), draw.Over, nil)
	imageToI420(small, s.res, buf)

	s.index++
	return ports.ReadFull, nil
}

func (s *Source) render(index int) image.Image {
	w := s.res.Width * oversample
	h := s.res.Height * oversample

	dc := gg.NewContext(w, h)

	// 75% color bars.
	bars := []struct{ r, g, b float64 }{
		{0.75, 0.75, 0.75},
		{0.75, 0.75, 0},
		{0, 0.75, 0.75},
		{0, 0.75, 0},
		{0.75, 0, 0.75},
		{0.75, 0, 0},
		{0, 0, 0.75},
		{0.1, 0.1, 0.1},
	}
	barW := float64(w) / float64(len(bars))
	for i, c := range bars {
		dc.SetRGB(c.r, c.g, c.b)
		dc.DrawRectangle(float64(i)*barW, 0, barW, float64(h))
		dc.Fill()
	}

	// A white block sweeping left to right, wrapping around. Its position
	// advances half a block width per frame so consecutive frames differ.
	blockW := w / 8
	blockH := h / 8
	if blockW < 2 {
		blockW = 2
	}
	if blockH < 2 {
		blockH = 2
	}
	span := w - blockW
	x := 0
	if span > 0 {
		x = (index * blockW / 2) % (span + 1)
	}
	y := (h - blockH) / 2

	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(float64(x), float64(y), float64(blockW), float64(blockH))
	dc.Fill()

	return dc.Image()
}

// imageToI420 packs img into buf as Y, U, V planes using BT.601
// coefficients. Chroma is sampled from the top-left pixel of each 2x2.
func imageToI420(img *image.RGBA, res ports.Resolution, buf []byte) {
	w, h := res.Width, res.Height
	chromaW := w / 2
	uOff := w * h
	vOff := uOff + chromaW*(h/2)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*img.Stride + x*4
			r := int(img.Pix[idx])
			g := int(img.Pix[idx+1])
			b := int(img.Pix[idx+2])

			buf[y*w+x] = clampByte(((66*r+129*g+25*b+128)>>8) + 16)

			if y%2 == 0 && x%2 == 0 {
				ci := (y/2)*chromaW + x/2
				buf[uOff+ci] = clampByte(((-38*r-74*g+112*b+128)>>8) + 128)
				buf[vOff+ci] = clampByte(((112*r-94*g-18*b+128)>>8) + 128)
			}
		}
	}
}

func clampByte(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

var _ ports.FrameSource = (*Source)(nil)
