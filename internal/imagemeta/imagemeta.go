package imagemeta

import (
	"encoding/binary"
	"fmt"
)

// Format identifies a supported image container format.
type Format string

const (
	FormatUnknown Format = ""
	FormatJPEG    Format = "jpeg"
	FormatPNG     Format = "png"
	FormatWebP    Format = "webp"
	FormatGIF     Format = "gif"
	FormatBMP     Format = "bmp"
)

// Metadata describes an encoded image without decoding its pixels.
type Metadata struct {
	// Width and Height are the image dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the detected container format.
	Format Format `json:"format"`

	// HasAlpha reports whether the container declares an alpha channel.
	HasAlpha bool `json:"hasAlpha"`
}

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// DetectFormat identifies the image format from the buffer's magic bytes.
// It returns FormatUnknown when no known signature matches.
func DetectFormat(data []byte) Format {
	if len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return FormatJPEG
	}
	if len(data) >= 8 && string(data[:8]) == string(pngSignature) {
		return FormatPNG
	}
	if len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP" {
		return FormatWebP
	}
	if len(data) >= 6 {
		if string(data[0:4]) == "GIF8" && (data[4] == '7' || data[4] == '9') && data[5] == 'a' {
			return FormatGIF
		}
	}
	if len(data) >= 2 && data[0] == 'B' && data[1] == 'M' {
		return FormatBMP
	}
	return FormatUnknown
}

// Probe reads the buffer's header and returns its metadata.
//
// Only the header is examined; a Probe success does not guarantee that
// the pixel payload is decodable.
func Probe(data []byte) (Metadata, error) {
	switch DetectFormat(data) {
	case FormatJPEG:
		return probeJPEG(data)
	case FormatPNG:
		return probePNG(data)
	case FormatWebP:
		return probeWebP(data)
	case FormatGIF:
		return probeGIF(data)
	case FormatBMP:
		return probeBMP(data)
	default:
		return Metadata{}, fmt.Errorf("imagemeta: unrecognized image signature")
	}
}

func probeGIF(data []byte) (Metadata, error) {
	if len(data) < 10 {
		return Metadata{}, fmt.Errorf("imagemeta: truncated GIF header")
	}
	return Metadata{
		Width:  int(binary.LittleEndian.Uint16(data[6:8])),
		Height: int(binary.LittleEndian.Uint16(data[8:10])),
		Format: FormatGIF,
	}, nil
}

func probeBMP(data []byte) (Metadata, error) {
	if len(data) < 30 {
		return Metadata{}, fmt.Errorf("imagemeta: truncated BMP header")
	}
	width := int(int32(binary.LittleEndian.Uint32(data[18:22])))
	height := int(int32(binary.LittleEndian.Uint32(data[22:26])))
	if height < 0 {
		// Top-down bitmaps store a negative height.
		height = -height
	}
	bitCount := binary.LittleEndian.Uint16(data[28:30])
	if width <= 0 || height <= 0 {
		return Metadata{}, fmt.Errorf("imagemeta: invalid BMP dimensions %dx%d", width, height)
	}
	return Metadata{
		Width:    width,
		Height:   height,
		Format:   FormatBMP,
		HasAlpha: bitCount == 32,
	}, nil
}
