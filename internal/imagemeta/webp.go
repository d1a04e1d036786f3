package imagemeta

import (
	"encoding/binary"
	"fmt"
)

// VP8X feature flag bits.
const (
	webpFlagICC   = 0x20
	webpFlagAlpha = 0x10
	webpFlagEXIF  = 0x08
	webpFlagXMP   = 0x04
	webpFlagAnim  = 0x02
)

// probeWebP reads the first RIFF chunk after the WEBP fourcc. The
// chunk type determines the encoding flavor and where the canvas
// dimensions live.
func probeWebP(data []byte) (Metadata, error) {
	if len(data) < 20 {
		return Metadata{}, fmt.Errorf("imagemeta: truncated WebP header")
	}

	chunkType := string(data[12:16])
	payload := data[20:] // past the chunk fourcc and size

	switch chunkType {
	case "VP8 ":
		return probeVP8(payload)
	case "VP8L":
		return probeVP8L(payload)
	case "VP8X":
		return probeVP8X(payload)
	default:
		return Metadata{}, fmt.Errorf("imagemeta: unsupported WebP chunk %q", chunkType)
	}
}

// probeVP8 parses a lossy bitstream key frame: a 3-byte frame tag, the
// 3-byte sync code 9D 01 2A, then 14-bit width and height.
func probeVP8(p []byte) (Metadata, error) {
	if len(p) < 10 {
		return Metadata{}, fmt.Errorf("imagemeta: truncated VP8 key frame")
	}
	if p[3] != 0x9D || p[4] != 0x01 || p[5] != 0x2A {
		return Metadata{}, fmt.Errorf("imagemeta: invalid VP8 sync code")
	}
	width := int(binary.LittleEndian.Uint16(p[6:8])) & 0x3FFF
	height := int(binary.LittleEndian.Uint16(p[8:10])) & 0x3FFF
	return Metadata{Width: width, Height: height, Format: FormatWebP}, nil
}

// probeVP8L parses a lossless bitstream header: the 0x2F signature
// byte, then a little-endian bitstream of 14-bit width-1, 14-bit
// height-1 and the alpha-is-used bit.
func probeVP8L(p []byte) (Metadata, error) {
	if len(p) < 5 {
		return Metadata{}, fmt.Errorf("imagemeta: truncated VP8L header")
	}
	if p[0] != 0x2F {
		return Metadata{}, fmt.Errorf("imagemeta: invalid VP8L signature")
	}
	bits := binary.LittleEndian.Uint32(p[1:5])
	width := int(bits&0x3FFF) + 1
	height := int((bits>>14)&0x3FFF) + 1
	hasAlpha := (bits>>28)&1 == 1
	return Metadata{Width: width, Height: height, Format: FormatWebP, HasAlpha: hasAlpha}, nil
}

// probeVP8X parses the extended-format chunk: a flags byte, three
// reserved bytes, then 24-bit canvas width-1 and height-1.
func probeVP8X(p []byte) (Metadata, error) {
	if len(p) < 10 {
		return Metadata{}, fmt.Errorf("imagemeta: truncated VP8X header")
	}
	width := int(uint32(p[4]) | uint32(p[5])<<8 | uint32(p[6])<<16)
	height := int(uint32(p[7]) | uint32(p[8])<<8 | uint32(p[9])<<16)
	return Metadata{
		Width:    width + 1,
		Height:   height + 1,
		Format:   FormatWebP,
		HasAlpha: p[0]&webpFlagAlpha != 0,
	}, nil
}
