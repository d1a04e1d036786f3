package imageturbo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ironsheep/image-turbo/internal/salient"
	"github.com/ironsheep/image-turbo/internal/transform"
)

// SmartCropAnalyze finds the most visually salient crop window of the
// requested size or aspect ratio and reports it without cropping.
func SmartCropAnalyze(data []byte, opts SmartCropOptions) (SmartCropResult, error) {
	img, err := decode(data)
	if err != nil {
		return SmartCropResult{}, err
	}
	bounds := img.Bounds()

	targetW, targetH, err := resolveCropTarget(bounds.Dx(), bounds.Dy(), opts)
	if err != nil {
		return SmartCropResult{}, err
	}

	crop, err := salient.FindBestCrop(img, targetW, targetH)
	if err != nil {
		return SmartCropResult{}, fmt.Errorf("%w: %v", ErrProcessing, err)
	}
	return SmartCropResult{
		X:      crop.X,
		Y:      crop.Y,
		Width:  crop.Width,
		Height: crop.Height,
		Score:  crop.Score,
	}, nil
}

// SmartCrop analyzes the image, extracts the winning window from the
// original raster and encodes it. The output format defaults to png.
func SmartCrop(data []byte, opts SmartCropOptions) ([]byte, error) {
	format := opts.Format
	if format == "" {
		format = FormatPNG
	}
	switch format {
	case FormatJPEG, FormatPNG, FormatWebP:
	default:
		return nil, fmt.Errorf("%w: unknown output format %q", ErrInvalidOption, format)
	}
	quality, err := resolveQuality(opts.Quality, 80)
	if err != nil {
		return nil, err
	}

	img, err := decode(data)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()

	targetW, targetH, err := resolveCropTarget(bounds.Dx(), bounds.Dy(), opts)
	if err != nil {
		return nil, err
	}

	crop, err := salient.FindBestCrop(img, targetW, targetH)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}
	cropped, err := transform.Crop(img, crop.X, crop.Y, crop.Width, crop.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}
	return encodeAs(cropped, format, quality)
}

// resolveCropTarget turns the options into a concrete window size.
// An aspect ratio wins over explicit dimensions and yields the
// largest window of that ratio fitting inside the source; explicit
// dimensions clamp to the source, with missing ones defaulting to
// the full extent.
func resolveCropTarget(imgW, imgH int, opts SmartCropOptions) (int, int, error) {
	if opts.AspectRatio != "" {
		ratioW, ratioH, err := parseAspectRatio(opts.AspectRatio)
		if err != nil {
			return 0, 0, err
		}
		scale := min(float64(imgW)/float64(ratioW), float64(imgH)/float64(ratioH))
		targetW := int(float64(ratioW) * scale)
		targetH := int(float64(ratioH) * scale)
		if targetW == 0 || targetH == 0 {
			return 0, 0, fmt.Errorf("%w: aspect ratio %q yields an empty window", ErrInvalidOption, opts.AspectRatio)
		}
		return targetW, targetH, nil
	}

	if opts.Width < 0 || opts.Height < 0 {
		return 0, 0, fmt.Errorf("%w: negative crop dimension", ErrInvalidOption)
	}
	targetW, targetH := imgW, imgH
	if opts.Width > 0 {
		targetW = min(opts.Width, imgW)
	}
	if opts.Height > 0 {
		targetH = min(opts.Height, imgH)
	}
	if targetW == 0 || targetH == 0 {
		return 0, 0, fmt.Errorf("%w: crop target has a zero dimension", ErrInvalidOption)
	}
	return targetW, targetH, nil
}

// parseAspectRatio parses a "W:H" string into two positive integers.
func parseAspectRatio(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: aspect ratio %q is not of the form W:H", ErrInvalidOption, s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: aspect ratio %q: non-numeric width", ErrInvalidOption, s)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: aspect ratio %q: non-numeric height", ErrInvalidOption, s)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: aspect ratio %q: parts must be positive", ErrInvalidOption, s)
	}
	return w, h, nil
}
