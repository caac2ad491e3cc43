package ivfsink

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderSize is the fixed byte length of an IVF file header.
const HeaderSize = 32

// FrameHeaderSize is the byte length of the record preceding each frame.
const FrameHeaderSize = 12

var magic = [4]byte{'D', 'K', 'I', 'F'}

// ErrBadMagic indicates the input does not start with an IVF signature.
var ErrBadMagic = errors.New("ivfsink: missing DKIF signature")

// Header is the 32-byte IVF file header.
type Header struct {
	FourCC      uint32
	Width       uint16
	Height      uint16
	TimebaseDen uint32
	TimebaseNum uint32
	FrameCount  uint32
}

// Marshal renders the header in little-endian wire order.
func (h Header) Marshal() []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:4], magic[:])
	binary.LittleEndian.PutUint16(buf[4:6], 0) // version
	binary.LittleEndian.PutUint16(buf[6:8], HeaderSize)
	binary.LittleEndian.PutUint32(buf[8:12], h.FourCC)
	binary.LittleEndian.PutUint16(buf[12:14], h.Width)
	binary.LittleEndian.PutUint16(buf[14:16], h.Height)
	binary.LittleEndian.PutUint32(buf[16:20], h.TimebaseDen)
	binary.LittleEndian.PutUint32(buf[20:24], h.TimebaseNum)
	binary.LittleEndian.PutUint32(buf[24:28], h.FrameCount)
	// buf[28:32] reserved, zero
	return buf
}

// ParseHeader decodes the file header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("ivfsink: header needs %d bytes, have %d", HeaderSize, len(data))
	}
	if data[0] != magic[0] || data[1] != magic[1] || data[2] != magic[2] || data[3] != magic[3] {
		return Header{}, ErrBadMagic
	}
	if v := binary.LittleEndian.Uint16(data[4:6]); v != 0 {
		return Header{}, fmt.Errorf("ivfsink: unsupported version %d", v)
	}
	if hs := binary.LittleEndian.Uint16(data[6:8]); hs != HeaderSize {
		return Header{}, fmt.Errorf("ivfsink: unexpected header size %d", hs)
	}
	return Header{
		FourCC:      binary.LittleEndian.Uint32(data[8:12]),
		Width:       binary.LittleEndian.Uint16(data[12:14]),
		Height:      binary.LittleEndian.Uint16(data[14:16]),
		TimebaseDen: binary.LittleEndian.Uint32(data[16:20]),
		TimebaseNum: binary.LittleEndian.Uint32(data[20:24]),
		FrameCount:  binary.LittleEndian.Uint32(data[24:28]),
	}, nil
}
