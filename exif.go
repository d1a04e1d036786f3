package imageturbo

import (
	"fmt"

	"github.com/ironsheep/image-turbo/internal/exifmeta"
	"github.com/ironsheep/image-turbo/internal/imagemeta"
)

// ExifFields are the writable EXIF tags. Empty strings and a zero
// Orientation leave the existing value untouched; WriteExif never
// clears a tag. Orientation must be 1-8 when set.
type ExifFields struct {
	ImageDescription string `json:"imageDescription,omitempty"`
	Artist           string `json:"artist,omitempty"`
	Copyright        string `json:"copyright,omitempty"`
	Software         string `json:"software,omitempty"`
	DateTime         string `json:"dateTime,omitempty"`
	DateTimeOriginal string `json:"dateTimeOriginal,omitempty"`
	UserComment      string `json:"userComment,omitempty"`
	Make             string `json:"make,omitempty"`
	Model            string `json:"model,omitempty"`
	Orientation      int    `json:"orientation,omitempty"`
}

// WriteExif merges the given fields into the buffer's EXIF data.
// Only JPEG and WebP inputs carry EXIF; anything else is rejected
// with ErrUnsupportedFormat. Pixel data passes through untouched.
func WriteExif(data []byte, fields ExifFields) ([]byte, error) {
	if fields.Orientation != 0 && (fields.Orientation < 1 || fields.Orientation > 8) {
		return nil, fmt.Errorf("%w: orientation %d outside 1-8", ErrInvalidOption, fields.Orientation)
	}

	meta, err := probe(data)
	if err != nil {
		return nil, err
	}

	f := exifmeta.Fields{
		ImageDescription: fields.ImageDescription,
		Artist:           fields.Artist,
		Copyright:        fields.Copyright,
		Software:         fields.Software,
		DateTime:         fields.DateTime,
		DateTimeOriginal: fields.DateTimeOriginal,
		UserComment:      fields.UserComment,
		Make:             fields.Make,
		Model:            fields.Model,
		Orientation:      fields.Orientation,
	}

	var out []byte
	switch meta.Format {
	case imagemeta.FormatJPEG:
		out, err = exifmeta.WriteJPEG(data, f)
	case imagemeta.FormatWebP:
		out, err = exifmeta.WriteWebP(data, meta, f)
	default:
		return nil, fmt.Errorf("%w: exif write on %s", ErrUnsupportedFormat, meta.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}
	return out, nil
}

// StripExif removes every EXIF-bearing segment or chunk from the
// buffer, leaving the pixel data bit-identical. Only JPEG and WebP
// inputs are supported.
func StripExif(data []byte) ([]byte, error) {
	meta, err := probe(data)
	if err != nil {
		return nil, err
	}

	var out []byte
	switch meta.Format {
	case imagemeta.FormatJPEG:
		out, err = exifmeta.StripJPEG(data)
	case imagemeta.FormatWebP:
		out, err = exifmeta.StripWebP(data)
	default:
		return nil, fmt.Errorf("%w: exif strip on %s", ErrUnsupportedFormat, meta.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}
	return out, nil
}
