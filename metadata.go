package imageturbo

import (
	"fmt"
	"image"

	"github.com/ironsheep/image-turbo/internal/codec"
	"github.com/ironsheep/image-turbo/internal/imagemeta"
)

// Metadata describes an encoded image, derived from its header bytes
// without a full pixel decode.
type Metadata struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	HasAlpha bool   `json:"hasAlpha"`
}

// ReadMetadata probes the buffer's header and reports its dimensions,
// container format and alpha flag.
func ReadMetadata(data []byte) (Metadata, error) {
	meta, err := probe(data)
	if err != nil {
		return Metadata{}, err
	}
	return Metadata{
		Width:    meta.Width,
		Height:   meta.Height,
		Format:   string(meta.Format),
		HasAlpha: meta.HasAlpha,
	}, nil
}

func probe(data []byte) (imagemeta.Metadata, error) {
	meta, err := imagemeta.Probe(data)
	if err != nil {
		return imagemeta.Metadata{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return meta, nil
}

func decode(data []byte) (image.Image, error) {
	img, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// decodeNear decodes data at or above the requested target, using the
// reduced shrink-on-load path when a target is given.
func decodeNear(data []byte, meta imagemeta.Metadata, width, height int) (image.Image, error) {
	plan := codec.PlanDecode(meta, width, height)
	if !plan.Reduced {
		return decode(data)
	}
	img, err := codec.DecodeReduced(data, meta, plan)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}
