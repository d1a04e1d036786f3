package imageturbo

import (
	"fmt"
	"image"

	"github.com/ironsheep/image-turbo/internal/codec"
	"github.com/ironsheep/image-turbo/internal/transform"
)

// Thumbnail runs the full thumbnail pipeline: probe, shrink-on-load
// or full decode, tolerant or exact resize, format and quality
// defaulting, encode.
//
// With ShrinkOnLoad (the default) the decoder is asked for a reduced
// decode near the target, so for large sources most pixels are never
// materialized. Fast mode additionally accepts decoded dimensions
// within 15% of the target as-is and uses nearest-neighbor sampling
// when a resize still happens.
func Thumbnail(data []byte, opts ThumbnailOptions) (ThumbnailResult, error) {
	if opts.Width <= 0 {
		return ThumbnailResult{}, fmt.Errorf("%w: thumbnail width must be positive", ErrInvalidOption)
	}
	if opts.Height < 0 {
		return ThumbnailResult{}, fmt.Errorf("%w: negative thumbnail height", ErrInvalidOption)
	}
	filter, err := resolveFilter(opts.Filter)
	if err != nil {
		return ThumbnailResult{}, err
	}

	meta, err := probe(data)
	if err != nil {
		return ThumbnailResult{}, err
	}
	targetW, targetH := codec.DeriveTarget(meta.Width, meta.Height, opts.Width, opts.Height)

	format, err := resolveOutputFormat(opts.Format, meta.Format)
	if err != nil {
		return ThumbnailResult{}, err
	}
	fallbackQuality := 80
	if opts.FastMode {
		fallbackQuality = 70
	}
	quality, err := resolveQuality(opts.Quality, fallbackQuality)
	if err != nil {
		return ThumbnailResult{}, err
	}

	shrink := opts.ShrinkOnLoad == nil || *opts.ShrinkOnLoad
	var img image.Image
	if shrink {
		img, err = decodeNear(data, meta, targetW, targetH)
	} else {
		img, err = decode(data)
	}
	if err != nil {
		return ThumbnailResult{}, err
	}

	bounds := img.Bounds()
	decodedW, decodedH := bounds.Dx(), bounds.Dy()
	shrinkUsed := shrink && (decodedW < meta.Width || decodedH < meta.Height)

	geo := transform.Plan(decodedW, decodedH, targetW, targetH, opts.FastMode, filter)
	if geo.NeedsResize {
		img = transform.Resize(img, targetW, targetH, transform.FitFill, geo.Filter, nil)
	}

	out, err := encodeAs(img, format, quality)
	if err != nil {
		return ThumbnailResult{}, err
	}

	outBounds := img.Bounds()
	return ThumbnailResult{
		Data:             out,
		Width:            outBounds.Dx(),
		Height:           outBounds.Dy(),
		Format:           format,
		ShrinkOnLoadUsed: shrinkUsed,
		OriginalWidth:    meta.Width,
		OriginalHeight:   meta.Height,
	}, nil
}

// ThumbnailBuffer is Thumbnail reduced to the encoded bytes.
func ThumbnailBuffer(data []byte, opts ThumbnailOptions) ([]byte, error) {
	res, err := Thumbnail(data, opts)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}
