package imageturbo

import (
	"fmt"
	"image/color"
	"image/png"

	"github.com/ironsheep/image-turbo/internal/imagemeta"
	"github.com/ironsheep/image-turbo/internal/transform"
)

// Resampling filter names accepted by ResizeOptions, ThumbnailOptions
// and TensorOptions. An empty string selects Lanczos.
const (
	FilterLanczos    = "lanczos"
	FilterCatmullRom = "catmullrom"
	FilterLinear     = "linear"
	FilterBox        = "box"
	FilterNearest    = "nearest"
	FilterMitchell   = "mitchell"
)

// Fit mode names accepted by ResizeOptions. An empty string selects
// Fill.
//
//   - fill: stretch to the exact target, ignoring source aspect ratio
//   - cover: scale to cover the target, center-cropping the overflow
//   - contain: scale to fit inside the target, padding with Background
//   - inside: bound within the target box, output may be smaller
const (
	FitFill    = "fill"
	FitCover   = "cover"
	FitContain = "contain"
	FitInside  = "inside"
)

// Output format names. An empty string lets the operation pick its
// documented default.
const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// ResizeOptions controls the Resize operation. At least one of Width
// and Height must be positive; a missing dimension is derived from
// the source aspect ratio.
type ResizeOptions struct {
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Filter string `json:"filter,omitempty"`
	Fit    string `json:"fit,omitempty"`

	// Background fills the padding area in contain mode. Nil means
	// opaque black.
	Background color.Color `json:"-"`
}

// CropRect is the rectangle extracted by the Crop operation, in
// source pixel coordinates.
type CropRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ThumbnailOptions controls the Thumbnail pipeline. Width is
// required; every other field has a documented default.
type ThumbnailOptions struct {
	// Width is the target width in pixels. Required, must be > 0.
	Width int `json:"width"`

	// Height is the target height. Zero derives it from the source
	// aspect ratio.
	Height int `json:"height,omitempty"`

	// Format selects the output encoding. Empty maps the input
	// format (jpeg, png and webp pass through), falling back to jpeg
	// for anything else.
	Format string `json:"format,omitempty"`

	// Quality is the lossy encoder quality, 1-100. Zero selects 70
	// in fast mode and 80 otherwise.
	Quality int `json:"quality,omitempty"`

	// FastMode trades exactness for speed: dimension matching becomes
	// tolerant and any resize pass uses nearest-neighbor sampling.
	FastMode bool `json:"fastMode,omitempty"`

	// ShrinkOnLoad asks the decoder for a reduced-resolution decode
	// near the target instead of decoding full-size. Nil means true.
	ShrinkOnLoad *bool `json:"shrinkOnLoad,omitempty"`

	// Filter selects the resampling kernel for exact-mode resizes.
	Filter string `json:"filter,omitempty"`
}

// ThumbnailResult is the full outcome of the Thumbnail pipeline.
type ThumbnailResult struct {
	Data             []byte `json:"-"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	Format           string `json:"format"`
	ShrinkOnLoadUsed bool   `json:"shrinkOnLoadUsed"`
	OriginalWidth    int    `json:"originalWidth"`
	OriginalHeight   int    `json:"originalHeight"`
}

// SmartCropOptions controls smart-crop target resolution. AspectRatio
// ("W:H") takes precedence over the explicit dimensions; explicit
// dimensions clamp to the source, and a missing one defaults to the
// full source extent.
type SmartCropOptions struct {
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	AspectRatio string `json:"aspectRatio,omitempty"`

	// Format and Quality control the encoded output of SmartCrop.
	// Format defaults to png; Quality applies to lossy formats and
	// defaults to 80.
	Format  string `json:"format,omitempty"`
	Quality int    `json:"quality,omitempty"`
}

// SmartCropResult reports the chosen crop window in source pixel
// coordinates. Score is an opaque saliency metric with no fixed
// scale; higher is better.
type SmartCropResult struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Score  float64 `json:"score"`
}

// JPEGOptions controls the ToJPEG encoder.
type JPEGOptions struct {
	// Quality is 1-100. Zero selects 80.
	Quality int `json:"quality,omitempty"`
}

// PNGOptions controls the ToPNG encoder.
type PNGOptions struct {
	// CompressionLevel is one of "default", "none", "speed", "best".
	// Empty selects "default".
	CompressionLevel string `json:"compressionLevel,omitempty"`
}

// WebPOptions controls the ToWebP encoder.
type WebPOptions struct {
	// Quality is 1-100 for lossy output. Zero selects 80.
	Quality int `json:"quality,omitempty"`

	Lossless bool `json:"lossless,omitempty"`
}

func resolveFilter(name string) (transform.Filter, error) {
	f := transform.Filter(name)
	if !transform.ValidFilter(f) {
		return "", fmt.Errorf("%w: unknown filter %q", ErrInvalidOption, name)
	}
	return f, nil
}

func resolveFit(name string) (transform.Fit, error) {
	if name == "" {
		return transform.FitFill, nil
	}
	f := transform.Fit(name)
	if !transform.ValidFit(f) {
		return "", fmt.Errorf("%w: unknown fit mode %q", ErrInvalidOption, name)
	}
	return f, nil
}

func resolvePNGLevel(name string) (png.CompressionLevel, error) {
	switch name {
	case "", "default":
		return png.DefaultCompression, nil
	case "none":
		return png.NoCompression, nil
	case "speed":
		return png.BestSpeed, nil
	case "best":
		return png.BestCompression, nil
	}
	return 0, fmt.Errorf("%w: unknown compression level %q", ErrInvalidOption, name)
}

func resolveQuality(quality, fallback int) (int, error) {
	if quality == 0 {
		return fallback, nil
	}
	if quality < 1 || quality > 100 {
		return 0, fmt.Errorf("%w: quality %d outside 1-100", ErrInvalidOption, quality)
	}
	return quality, nil
}

// resolveOutputFormat applies the thumbnail format policy: an explicit
// choice wins, a recognized input format passes through, and anything
// else falls back to jpeg.
func resolveOutputFormat(explicit string, input imagemeta.Format) (string, error) {
	switch explicit {
	case FormatJPEG, FormatPNG, FormatWebP:
		return explicit, nil
	case "":
	default:
		return "", fmt.Errorf("%w: unknown output format %q", ErrInvalidOption, explicit)
	}
	switch input {
	case imagemeta.FormatJPEG:
		return FormatJPEG, nil
	case imagemeta.FormatPNG:
		return FormatPNG, nil
	case imagemeta.FormatWebP:
		return FormatWebP, nil
	}
	return FormatJPEG, nil
}
