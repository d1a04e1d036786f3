package imagemeta

import (
	"encoding/binary"
	"fmt"
)

// PNG color types from the IHDR specification.
const (
	pngColorGray      = 0
	pngColorTrueColor = 2
	pngColorPalette   = 3
	pngColorGrayAlpha = 4
	pngColorTrueAlpha = 6
)

// probePNG reads IHDR and, for palette images, scans the chunk chain
// for a tRNS entry to detect transparency.
func probePNG(data []byte) (Metadata, error) {
	// Signature (8) + IHDR length (4) + "IHDR" (4) + payload (13).
	if len(data) < 29 {
		return Metadata{}, fmt.Errorf("imagemeta: truncated PNG header")
	}
	if string(data[12:16]) != "IHDR" {
		return Metadata{}, fmt.Errorf("imagemeta: PNG missing IHDR chunk")
	}

	width := int(binary.BigEndian.Uint32(data[16:20]))
	height := int(binary.BigEndian.Uint32(data[20:24]))
	colorType := data[25]

	if width == 0 || height == 0 {
		return Metadata{}, fmt.Errorf("imagemeta: invalid PNG dimensions %dx%d", width, height)
	}

	hasAlpha := false
	switch colorType {
	case pngColorGrayAlpha, pngColorTrueAlpha:
		hasAlpha = true
	case pngColorPalette:
		hasAlpha = pngHasTRNS(data)
	}

	return Metadata{Width: width, Height: height, Format: FormatPNG, HasAlpha: hasAlpha}, nil
}

// pngHasTRNS walks chunks up to the first IDAT looking for tRNS.
func pngHasTRNS(data []byte) bool {
	pos := 8
	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		chunkType := string(data[pos+4 : pos+8])
		switch chunkType {
		case "tRNS":
			return true
		case "IDAT", "IEND":
			return false
		}
		// Length + type + payload + CRC.
		pos += 8 + length + 4
	}
	return false
}
