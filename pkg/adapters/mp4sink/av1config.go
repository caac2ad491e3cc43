package mp4sink

import (
	"github.com/Eyevinn/mp4ff/av1"
	"github.com/Eyevinn/mp4ff/mp4"
)

// configRecord builds the av1C box. The sequence header OBU is lifted
// from the first keyframe so players can initialize without scanning
// the bitstream.
func configRecord(frames []frameRecord) *mp4.Av1CBox {
	var seqHdr []byte
	for _, f := range frames {
		if f.keyframe && len(f.data) > 0 {
			seqHdr = extractSequenceHeader(f.data)
			break
		}
	}

	return &mp4.Av1CBox{
		CodecConfRec: av1.CodecConfRec{
			Version:              1,
			SeqProfile:           0,
			SeqLevelIdx0:         8, // Level 4.0
			SeqTier0:             0,
			HighBitdepth:         0,
			TwelveBit:            0,
			MonoChrome:           0,
			ChromaSubsamplingX:   1, // 4:2:0
			ChromaSubsamplingY:   1,
			ChromaSamplePosition: 0,
			ConfigOBUs:           seqHdr,
		},
	}
}

const obuSequenceHeader = 1

// extractSequenceHeader walks the OBUs in a temporal unit and returns
// the complete sequence header OBU, header bytes included.
func extractSequenceHeader(data []byte) []byte {
	offset := 0
	for offset < len(data) {
		start := offset
		header := data[offset]
		obuType := (header >> 3) & 0x0F
		hasExtension := header&0x04 != 0
		hasSize := header&0x02 != 0
		offset++

		if hasExtension {
			if offset >= len(data) {
				return nil
			}
			offset++
		}

		size := len(data) - offset
		if hasSize {
			size, offset = readLeb128(data, offset)
		}

		end := offset + size
		if end > len(data) {
			end = len(data)
		}

		if obuType == obuSequenceHeader {
			return data[start:end]
		}
		offset = end
	}
	return nil
}

// readLeb128 reads a LEB128 encoded value.
func readLeb128(data []byte, offset int) (int, int) {
	value := 0
	for i := 0; i < 8 && offset < len(data); i++ {
		b := data[offset]
		offset++
		value |= int(b&0x7F) << (i * 7)
		if b&0x80 == 0 {
			break
		}
	}
	return value, offset
}
