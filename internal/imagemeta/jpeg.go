package imagemeta

import (
	"encoding/binary"
	"fmt"
)

// probeJPEG walks the segment chain until a start-of-frame marker and
// reads the dimensions from its header.
func probeJPEG(data []byte) (Metadata, error) {
	pos := 2 // past SOI

	for pos+4 <= len(data) {
		if data[pos] != 0xFF {
			return Metadata{}, fmt.Errorf("imagemeta: corrupt JPEG segment chain at offset %d", pos)
		}
		marker := data[pos+1]
		pos += 2

		// Skip fill bytes between segments.
		for marker == 0xFF && pos < len(data) {
			marker = data[pos]
			pos++
		}

		switch {
		case marker == 0xD9 || marker == 0xDA:
			// EOI or start-of-scan before any SOF: no frame header.
			return Metadata{}, fmt.Errorf("imagemeta: JPEG frame header not found")
		case marker >= 0xD0 && marker <= 0xD7:
			// Restart markers carry no length.
			continue
		}

		if pos+2 > len(data) {
			break
		}
		length := int(binary.BigEndian.Uint16(data[pos : pos+2]))
		if length < 2 || pos+length > len(data) {
			return Metadata{}, fmt.Errorf("imagemeta: truncated JPEG segment 0x%02X", marker)
		}

		if isSOFMarker(marker) {
			// SOF payload: precision, height, width, component count.
			if length < 7 {
				return Metadata{}, fmt.Errorf("imagemeta: short JPEG frame header")
			}
			height := int(binary.BigEndian.Uint16(data[pos+3 : pos+5]))
			width := int(binary.BigEndian.Uint16(data[pos+5 : pos+7]))
			return Metadata{Width: width, Height: height, Format: FormatJPEG}, nil
		}

		pos += length
	}

	return Metadata{}, fmt.Errorf("imagemeta: truncated JPEG buffer")
}

// isSOFMarker reports whether the marker starts a frame header. DHT,
// JPG and DAC share the 0xC0 range but are not frame headers.
func isSOFMarker(marker byte) bool {
	if marker < 0xC0 || marker > 0xCF {
		return false
	}
	switch marker {
	case 0xC4, 0xC8, 0xCC:
		return false
	}
	return true
}
