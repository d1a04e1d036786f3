package imageturbo

import (
	"fmt"
	"image"

	"github.com/ironsheep/image-turbo/internal/codec"
	"github.com/ironsheep/image-turbo/internal/tensorpack"
	"github.com/ironsheep/image-turbo/internal/transform"
)

// TensorOptions controls ToTensor. Every field is optional; zero
// values select the documented defaults.
type TensorOptions struct {
	// DType is one of float32, float64, float16, uint8. Empty selects
	// float32. A uint8 tensor only allows normalization "none".
	DType string `json:"dtype,omitempty"`

	// Layout is chw (channel-first) or hwc (channel-last). Empty
	// selects chw.
	Layout string `json:"layout,omitempty"`

	// Normalization is one of none, unit ([0,1]), centered ([-1,1]),
	// imagenet (per-channel mean/std). Empty selects unit.
	Normalization string `json:"normalization,omitempty"`

	// Width and Height optionally resize before packing; a single
	// present dimension derives the other from the aspect ratio.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Batch prepends a leading 1 to the shape.
	Batch bool `json:"batch,omitempty"`
}

// TensorResult is a packed numeric array plus its description. Data
// is little-endian; Channels is always 3 (RGB).
type TensorResult struct {
	Data          []byte `json:"-"`
	Shape         []int  `json:"shape"`
	DType         string `json:"dtype"`
	Layout        string `json:"layout"`
	Normalization string `json:"normalization"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Channels      int    `json:"channels"`
}

// ToTensor decodes the image and packs its pixels into a numeric
// array for ML consumption.
func ToTensor(data []byte, opts TensorOptions) (TensorResult, error) {
	dtype := tensorpack.DType(opts.DType)
	if dtype == "" {
		dtype = tensorpack.Float32
	}
	switch dtype {
	case tensorpack.Float32, tensorpack.Float64, tensorpack.Float16, tensorpack.Uint8:
	default:
		return TensorResult{}, fmt.Errorf("%w: unknown dtype %q", ErrInvalidOption, opts.DType)
	}

	layout := tensorpack.Layout(opts.Layout)
	if layout == "" {
		layout = tensorpack.CHW
	}
	switch layout {
	case tensorpack.CHW, tensorpack.HWC:
	default:
		return TensorResult{}, fmt.Errorf("%w: unknown layout %q", ErrInvalidOption, opts.Layout)
	}

	norm := tensorpack.Normalization(opts.Normalization)
	if norm == "" {
		norm = tensorpack.NormUnit
	}
	switch norm {
	case tensorpack.NormNone, tensorpack.NormUnit, tensorpack.NormCentered, tensorpack.NormImageNet:
	default:
		return TensorResult{}, fmt.Errorf("%w: unknown normalization %q", ErrInvalidOption, opts.Normalization)
	}
	if dtype == tensorpack.Uint8 && norm != tensorpack.NormNone {
		return TensorResult{}, fmt.Errorf("%w: uint8 tensors support only normalization \"none\"", ErrInvalidOption)
	}
	if opts.Width < 0 || opts.Height < 0 {
		return TensorResult{}, fmt.Errorf("%w: negative tensor dimension", ErrInvalidOption)
	}

	meta, err := probe(data)
	if err != nil {
		return TensorResult{}, err
	}
	targetW, targetH := codec.DeriveTarget(meta.Width, meta.Height, opts.Width, opts.Height)

	var img image.Image
	if targetW > 0 {
		img, err = decodeNear(data, meta, targetW, targetH)
		if err != nil {
			return TensorResult{}, err
		}
		bounds := img.Bounds()
		if bounds.Dx() != targetW || bounds.Dy() != targetH {
			img = transform.Resize(img, targetW, targetH, transform.FitFill, transform.FilterLanczos, nil)
		}
	} else {
		img, err = decode(data)
		if err != nil {
			return TensorResult{}, err
		}
	}

	packed, shape, err := tensorpack.Pack(img, dtype, layout, norm)
	if err != nil {
		return TensorResult{}, fmt.Errorf("%w: %v", ErrProcessing, err)
	}
	if opts.Batch {
		shape = append([]int{1}, shape...)
	}

	bounds := img.Bounds()
	return TensorResult{
		Data:          packed,
		Shape:         shape,
		DType:         string(dtype),
		Layout:        string(layout),
		Normalization: string(norm),
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Channels:      3,
	}, nil
}
