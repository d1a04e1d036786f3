package imageturbo

import (
	"fmt"
	"image"
	"image/png"

	"github.com/ironsheep/image-turbo/internal/codec"
	"github.com/ironsheep/image-turbo/internal/transform"
)

// Resize decodes the buffer, resizes it per the options and returns
// the result encoded as PNG. One of Width and Height may be zero, in
// which case it is derived from the source aspect ratio.
func Resize(data []byte, opts ResizeOptions) ([]byte, error) {
	if opts.Width < 0 || opts.Height < 0 {
		return nil, fmt.Errorf("%w: negative target dimension", ErrInvalidOption)
	}
	if opts.Width == 0 && opts.Height == 0 {
		return nil, fmt.Errorf("%w: resize requires a target width or height", ErrInvalidOption)
	}
	filter, err := resolveFilter(opts.Filter)
	if err != nil {
		return nil, err
	}
	fit, err := resolveFit(opts.Fit)
	if err != nil {
		return nil, err
	}

	meta, err := probe(data)
	if err != nil {
		return nil, err
	}
	targetW, targetH := codec.DeriveTarget(meta.Width, meta.Height, opts.Width, opts.Height)

	img, err := decode(data)
	if err != nil {
		return nil, err
	}
	resized := transform.Resize(img, targetW, targetH, fit, filter, opts.Background)

	out, err := codec.EncodePNG(resized, png.DefaultCompression)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}
	return out, nil
}

// Crop extracts the given rectangle and returns it encoded as PNG.
// The rectangle must lie fully within the source image.
func Crop(data []byte, rect CropRect) ([]byte, error) {
	img, err := decode(data)
	if err != nil {
		return nil, err
	}
	cropped, err := transform.Crop(img, rect.X, rect.Y, rect.Width, rect.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOption, err)
	}
	out, err := codec.EncodePNG(cropped, png.DefaultCompression)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}
	return out, nil
}

// ToJPEG re-encodes the buffer as JPEG.
func ToJPEG(data []byte, opts JPEGOptions) ([]byte, error) {
	quality, err := resolveQuality(opts.Quality, 80)
	if err != nil {
		return nil, err
	}
	img, err := decode(data)
	if err != nil {
		return nil, err
	}
	out, err := codec.EncodeJPEG(img, quality)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}
	return out, nil
}

// ToPNG re-encodes the buffer as PNG.
func ToPNG(data []byte, opts PNGOptions) ([]byte, error) {
	level, err := resolvePNGLevel(opts.CompressionLevel)
	if err != nil {
		return nil, err
	}
	img, err := decode(data)
	if err != nil {
		return nil, err
	}
	out, err := codec.EncodePNG(img, level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}
	return out, nil
}

// ToWebP re-encodes the buffer as WebP.
func ToWebP(data []byte, opts WebPOptions) ([]byte, error) {
	quality, err := resolveQuality(opts.Quality, 80)
	if err != nil {
		return nil, err
	}
	img, err := decode(data)
	if err != nil {
		return nil, err
	}
	out, err := codec.EncodeWebP(img, quality, opts.Lossless)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}
	return out, nil
}

// encodeAs encodes img as the named output format. WebP output here
// is always lossy; callers wanting lossless go through ToWebP.
func encodeAs(img image.Image, format string, quality int) ([]byte, error) {
	var out []byte
	var err error
	switch format {
	case FormatJPEG:
		out, err = codec.EncodeJPEG(img, quality)
	case FormatPNG:
		out, err = codec.EncodePNG(img, png.DefaultCompression)
	case FormatWebP:
		out, err = codec.EncodeWebP(img, quality, false)
	default:
		return nil, fmt.Errorf("%w: unknown output format %q", ErrInvalidOption, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %v", ErrProcessing, format, err)
	}
	return out, nil
}
