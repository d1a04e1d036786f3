package tensorpack

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"

	"github.com/x448/float16"
)

// DType names a supported element type.
type DType string

const (
	Float32 DType = "float32"
	Float64 DType = "float64"
	Float16 DType = "float16"
	Uint8   DType = "uint8"
)

// Layout names the memory order of the packed array.
type Layout string

const (
	CHW Layout = "chw"
	HWC Layout = "hwc"
)

// Normalization names a value-scaling preset.
type Normalization string

const (
	NormNone     Normalization = "none"
	NormUnit     Normalization = "unit"
	NormCentered Normalization = "centered"
	NormImageNet Normalization = "imagenet"
)

// ImageNet per-channel statistics, in RGB order.
var (
	imagenetMean = [3]float64{0.485, 0.456, 0.406}
	imagenetStd  = [3]float64{0.229, 0.224, 0.225}
)

// Pack converts img into a packed numeric array. The returned shape is
// [3, H, W] for CHW and [H, W, 3] for HWC; callers wanting a batch
// dimension prepend it to the shape themselves.
func Pack(img image.Image, dtype DType, layout Layout, norm Normalization) ([]byte, []int, error) {
	if dtype == Uint8 && norm != NormNone {
		return nil, nil, fmt.Errorf("tensorpack: uint8 output cannot carry %q normalization", norm)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	values := make([]float64, 3*w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			px := [3]float64{float64(r >> 8), float64(g >> 8), float64(bl >> 8)}
			for c := 0; c < 3; c++ {
				values[index(layout, w, h, x, y, c)] = normalize(px[c], c, norm)
			}
		}
	}

	data, err := emit(values, dtype)
	if err != nil {
		return nil, nil, err
	}

	shape := []int{3, h, w}
	if layout == HWC {
		shape = []int{h, w, 3}
	}
	return data, shape, nil
}

func index(layout Layout, w, h, x, y, c int) int {
	if layout == HWC {
		return (y*w+x)*3 + c
	}
	return c*w*h + y*w + x
}

func normalize(v float64, channel int, norm Normalization) float64 {
	switch norm {
	case NormUnit:
		return v / 255
	case NormCentered:
		return v/127.5 - 1
	case NormImageNet:
		return (v/255 - imagenetMean[channel]) / imagenetStd[channel]
	default:
		return v
	}
}

func emit(values []float64, dtype DType) ([]byte, error) {
	switch dtype {
	case Uint8:
		out := make([]byte, len(values))
		for i, v := range values {
			out[i] = uint8(v)
		}
		return out, nil
	case Float16:
		out := make([]byte, 2*len(values))
		for i, v := range values {
			binary.LittleEndian.PutUint16(out[2*i:], float16.Fromfloat32(float32(v)).Bits())
		}
		return out, nil
	case Float32:
		out := make([]byte, 4*len(values))
		for i, v := range values {
			binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(float32(v)))
		}
		return out, nil
	case Float64:
		out := make([]byte, 8*len(values))
		for i, v := range values {
			binary.LittleEndian.PutUint64(out[8*i:], math.Float64bits(v))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("tensorpack: unknown dtype %q", dtype)
	}
}

// ElementSize returns the byte width of one element of dtype, or 0 for
// an unknown dtype.
func ElementSize(dtype DType) int {
	switch dtype {
	case Uint8:
		return 1
	case Float16:
		return 2
	case Float32:
		return 4
	case Float64:
		return 8
	}
	return 0
}
