package ports

import "fmt"

// Resolution describes the pixel dimensions of a video stream.
type Resolution struct {
	Width  int
	Height int
}

// FrameSize returns the byte length of one planar 4:2:0 frame:
// a full-resolution luma plane followed by two quarter-size chroma planes.
func (r Resolution) FrameSize() int {
	return r.Width * r.Height * 3 / 2
}

// PixelCount returns the number of pixels in one frame.
func (r Resolution) PixelCount() int {
	return r.Width * r.Height
}

// String returns the "WxH" form.
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Rational is an exact fraction. Timebases and frame rates are carried
// as rationals so timestamp math never drifts.
type Rational struct {
	Num int
	Den int
}

// Invert returns the reciprocal fraction.
func (r Rational) Invert() Rational {
	return Rational{Num: r.Den, Den: r.Num}
}

// String returns the "num/den" form.
func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Packed fourcc tags for the supported bitstreams.
const (
	FourCCVP8 uint32 = 0x30385056 // "VP80"
	FourCCVP9 uint32 = 0x30395056 // "VP90"
	FourCCAV1 uint32 = 0x31305641 // "AV01"
)

// FourCCString renders a packed fourcc code as its four ASCII characters.
func FourCCString(code uint32) string {
	return string([]byte{byte(code), byte(code >> 8), byte(code >> 16), byte(code >> 24)})
}
