package transform

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Filter selects the resampling kernel used for resize passes.
type Filter string

const (
	FilterDefault  Filter = ""
	FilterLanczos  Filter = "lanczos"
	FilterCatmull  Filter = "catmullrom"
	FilterLinear   Filter = "linear"
	FilterBox      Filter = "box"
	FilterNearest  Filter = "nearest"
	FilterMitchell Filter = "mitchell"
)

// Fit selects how a source aspect ratio is reconciled with the target
// rectangle. See the package documentation for the exact semantics.
type Fit string

const (
	FitFill    Fit = "fill"
	FitCover   Fit = "cover"
	FitContain Fit = "contain"
	FitInside  Fit = "inside"
)

// Fast-mode tolerance window: decoded/target ratios inside
// [minTolerance, maxTolerance] skip the resize pass.
const (
	minTolerance = 0.85
	maxTolerance = 1.15
)

// Geometry is the outcome of a resize decision.
type Geometry struct {
	// NeedsResize reports whether a resize pass must run.
	NeedsResize bool

	// Filter is the kernel the resize pass must use. In fast mode it
	// is forced to nearest-neighbor regardless of the caller's choice.
	Filter Filter
}

// Plan decides whether decoded dimensions need a resize to reach the
// target, and with which filter.
func Plan(decodedW, decodedH, targetW, targetH int, fast bool, filter Filter) Geometry {
	if filter == FilterDefault {
		filter = FilterLanczos
	}

	if fast {
		wRatio := float64(decodedW) / float64(targetW)
		hRatio := float64(decodedH) / float64(targetH)
		if wRatio >= minTolerance && wRatio <= maxTolerance &&
			hRatio >= minTolerance && hRatio <= maxTolerance {
			return Geometry{NeedsResize: false, Filter: filter}
		}
		return Geometry{NeedsResize: true, Filter: FilterNearest}
	}

	if decodedW == targetW && decodedH == targetH {
		return Geometry{NeedsResize: false, Filter: filter}
	}
	return Geometry{NeedsResize: true, Filter: filter}
}

// ResampleFilter maps a Filter to the imaging kernel. Unknown names
// fall back to Lanczos.
func ResampleFilter(f Filter) imaging.ResampleFilter {
	switch f {
	case FilterCatmull:
		return imaging.CatmullRom
	case FilterLinear:
		return imaging.Linear
	case FilterBox:
		return imaging.Box
	case FilterNearest:
		return imaging.NearestNeighbor
	case FilterMitchell:
		return imaging.MitchellNetravali
	default:
		return imaging.Lanczos
	}
}

// ValidFilter reports whether f names a known filter or is unset.
func ValidFilter(f Filter) bool {
	switch f {
	case FilterDefault, FilterLanczos, FilterCatmull, FilterLinear,
		FilterBox, FilterNearest, FilterMitchell:
		return true
	}
	return false
}

// ValidFit reports whether f names a known fit mode or is unset.
func ValidFit(f Fit) bool {
	switch f {
	case Fit(""), FitFill, FitCover, FitContain, FitInside:
		return true
	}
	return false
}

// Resize scales img to the target according to the fit mode. The
// background color is used only by FitContain padding; nil defaults to
// opaque black.
func Resize(img image.Image, targetW, targetH int, fit Fit, filter Filter, background color.Color) *image.NRGBA {
	kernel := ResampleFilter(filter)
	switch fit {
	case FitCover:
		return imaging.Fill(img, targetW, targetH, imaging.Center, kernel)
	case FitContain:
		if background == nil {
			background = color.NRGBA{A: 0xFF}
		}
		fitted := imaging.Fit(img, targetW, targetH, kernel)
		canvas := imaging.New(targetW, targetH, background)
		return imaging.PasteCenter(canvas, fitted)
	case FitInside:
		return imaging.Fit(img, targetW, targetH, kernel)
	default: // FitFill
		return imaging.Resize(img, targetW, targetH, kernel)
	}
}

// Crop extracts the rectangle from img, preserving the source channel
// layout as far as imaging allows.
func Crop(img image.Image, x, y, width, height int) (*image.NRGBA, error) {
	b := img.Bounds()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("transform: crop size %dx%d must be positive", width, height)
	}
	if x < 0 || y < 0 || x+width > b.Dx() || y+height > b.Dy() {
		return nil, fmt.Errorf("transform: crop region (%d,%d)+%dx%d outside image %dx%d",
			x, y, width, height, b.Dx(), b.Dy())
	}
	rect := image.Rect(b.Min.X+x, b.Min.Y+y, b.Min.X+x+width, b.Min.Y+y+height)
	return imaging.Crop(img, rect), nil
}
