package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	libjpeg "github.com/pixiv/go-libjpeg/jpeg"
	"golang.org/x/image/bmp"
	xwebp "golang.org/x/image/webp"

	"github.com/ironsheep/image-turbo/internal/imagemeta"
)

// Plan describes how an image should be decoded.
//
// A zero Plan requests a full-resolution decode. A plan with Reduced
// set asks the decoder for dimensions at or near the target; the
// decoded result may be larger than the target but never smaller
// (unless the source itself is smaller).
type Plan struct {
	TargetWidth  int
	TargetHeight int
	Reduced      bool
}

// PlanDecode computes the decode plan for a requested target size.
// Passing zero for both dimensions requests a full decode; passing
// zero for one dimension derives it from the source aspect ratio.
func PlanDecode(meta imagemeta.Metadata, width, height int) Plan {
	w, h := DeriveTarget(meta.Width, meta.Height, width, height)
	if w == 0 || h == 0 {
		return Plan{}
	}
	return Plan{TargetWidth: w, TargetHeight: h, Reduced: true}
}

// DeriveTarget resolves a possibly one-sided dimension request against
// the source dimensions, preserving aspect ratio for the derived side.
// Derived dimensions round half-up and are clamped to a minimum of 1.
// Both zero means "no target".
func DeriveTarget(srcWidth, srcHeight, reqWidth, reqHeight int) (int, int) {
	switch {
	case reqWidth == 0 && reqHeight == 0:
		return 0, 0
	case reqHeight == 0:
		h := int(math.Round(float64(reqWidth) * float64(srcHeight) / float64(srcWidth)))
		if h < 1 {
			h = 1
		}
		return reqWidth, h
	case reqWidth == 0:
		w := int(math.Round(float64(reqHeight) * float64(srcWidth) / float64(srcHeight)))
		if w < 1 {
			w = 1
		}
		return w, reqHeight
	default:
		return reqWidth, reqHeight
	}
}

// Decode fully decodes the buffer using the decoder for its detected
// format.
func Decode(data []byte) (image.Image, error) {
	meta, err := imagemeta.Probe(data)
	if err != nil {
		return nil, err
	}
	return decodeAs(data, meta.Format)
}

func decodeAs(data []byte, format imagemeta.Format) (image.Image, error) {
	r := bytes.NewReader(data)
	switch format {
	case imagemeta.FormatJPEG:
		img, err := libjpeg.Decode(r, &libjpeg.DecoderOptions{})
		if err != nil {
			return nil, fmt.Errorf("codec: jpeg decode: %w", err)
		}
		return img, nil
	case imagemeta.FormatPNG:
		img, err := png.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("codec: png decode: %w", err)
		}
		return img, nil
	case imagemeta.FormatWebP:
		img, err := xwebp.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("codec: webp decode: %w", err)
		}
		return img, nil
	case imagemeta.FormatGIF:
		img, err := gif.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("codec: gif decode: %w", err)
		}
		return img, nil
	case imagemeta.FormatBMP:
		img, err := bmp.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("codec: bmp decode: %w", err)
		}
		return img, nil
	default:
		return nil, fmt.Errorf("codec: no decoder for format %q", format)
	}
}

// DecodeReduced decodes according to the plan. With a reduced plan,
// JPEG sources decode directly at a scaled resolution; other formats
// decode fully and are downsampled to cover the target. Either way the
// result's dimensions are at least the plan target when the source is
// large enough.
func DecodeReduced(data []byte, meta imagemeta.Metadata, plan Plan) (image.Image, error) {
	if !plan.Reduced {
		return decodeAs(data, meta.Format)
	}

	if meta.Format == imagemeta.FormatJPEG {
		img, err := libjpeg.Decode(bytes.NewReader(data), &libjpeg.DecoderOptions{
			ScaleTarget: image.Rect(0, 0, plan.TargetWidth, plan.TargetHeight),
		})
		if err != nil {
			return nil, fmt.Errorf("codec: scaled jpeg decode: %w", err)
		}
		return img, nil
	}

	img, err := decodeAs(data, meta.Format)
	if err != nil {
		return nil, err
	}
	return shrinkToCover(img, plan.TargetWidth, plan.TargetHeight), nil
}

// shrinkToCover downsamples img so the target box is still covered,
// preserving aspect ratio. Images already at or below the target scale
// are returned unchanged; shrink-on-load never upscales.
func shrinkToCover(img image.Image, targetW, targetH int) image.Image {
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	scale := math.Max(float64(targetW)/float64(srcW), float64(targetH)/float64(srcH))
	if scale >= 1 {
		return img
	}
	w := int(math.Ceil(float64(srcW) * scale))
	h := int(math.Ceil(float64(srcH) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return imaging.Resize(img, w, h, imaging.CatmullRom)
}

// ToRGBA returns img as *image.RGBA, converting only when necessary.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// ToNRGBA returns img as *image.NRGBA, converting only when necessary.
func ToNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba
	}
	return imaging.Clone(img)
}
