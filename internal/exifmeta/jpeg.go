package exifmeta

import (
	"bytes"
	"fmt"

	exif "github.com/dsoprea/go-exif/v3"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
)

// WriteJPEG returns data with the given fields merged into its APP1
// Exif segment, creating the segment when absent.
func WriteJPEG(data []byte, fields Fields) ([]byte, error) {
	sl, err := parseJPEG(data)
	if err != nil {
		return nil, err
	}

	rootIb, err := sl.ConstructExifBuilder()
	if err != nil {
		// No existing Exif segment: start from an empty builder.
		rootIb, err = newRootBuilder()
		if err != nil {
			return nil, err
		}
	}

	if err := apply(rootIb, fields); err != nil {
		return nil, err
	}
	if err := sl.SetExif(rootIb); err != nil {
		return nil, fmt.Errorf("exifmeta: set jpeg exif segment: %w", err)
	}

	return writeJPEG(sl)
}

// StripJPEG returns data with its Exif segment removed. Every other
// segment, including the entropy-coded image data, passes through
// unchanged.
func StripJPEG(data []byte) ([]byte, error) {
	sl, err := parseJPEG(data)
	if err != nil {
		return nil, err
	}
	if _, err := sl.DropExif(); err != nil {
		return nil, fmt.Errorf("exifmeta: drop jpeg exif segment: %w", err)
	}
	return writeJPEG(sl)
}

// HasJPEGExif reports whether the buffer carries an Exif segment.
func HasJPEGExif(data []byte) (bool, error) {
	sl, err := parseJPEG(data)
	if err != nil {
		return false, err
	}
	_, _, err = sl.Exif()
	return err == nil, nil
}

func parseJPEG(data []byte) (*jpegstructure.SegmentList, error) {
	jmp := jpegstructure.NewJpegMediaParser()
	intfc, err := jmp.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("exifmeta: parse jpeg: %w", err)
	}
	sl, ok := intfc.(*jpegstructure.SegmentList)
	if !ok {
		return nil, fmt.Errorf("exifmeta: unexpected jpeg parse result %T", intfc)
	}
	return sl, nil
}

func writeJPEG(sl *jpegstructure.SegmentList) ([]byte, error) {
	var buf bytes.Buffer
	if err := sl.Write(&buf); err != nil {
		return nil, fmt.Errorf("exifmeta: serialize jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// encodeRaw serializes a builder into a raw TIFF-structured EXIF blob
// (no container prefix), as embedded by formats other than JPEG.
func encodeRaw(rootIb *exif.IfdBuilder) ([]byte, error) {
	ibe := exif.NewIfdByteEncoder()
	raw, err := ibe.EncodeToExif(rootIb)
	if err != nil {
		return nil, fmt.Errorf("exifmeta: encode exif blob: %w", err)
	}
	return raw, nil
}
