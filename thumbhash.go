package imageturbo

import (
	"encoding/base64"
	"fmt"
	"math"

	"github.com/galdor/go-thumbhash"

	"github.com/ironsheep/image-turbo/internal/codec"
)

// thumbhashMaxDim bounds the raster the hash is computed from. The
// hash of a reduced raster is visually indistinguishable from the
// full-size one, and skipping the full decode is the whole point.
const thumbhashMaxDim = 100

// ThumbhashResult carries the hash plus the ORIGINAL probed
// dimensions and alpha flag. The hash itself reflects a raster capped
// at 100px on its larger side; the reported dimensions are what a
// placeholder renderer needs to size the decoded preview.
type ThumbhashResult struct {
	// Hash is the base64-encoded thumbhash bytes.
	Hash string `json:"hash"`

	Width    int  `json:"width"`
	Height   int  `json:"height"`
	HasAlpha bool `json:"hasAlpha"`
}

// ThumbhashImage is a decoded thumbhash placeholder as raw RGBA
// pixels, 4 bytes per pixel in row-major order.
type ThumbhashImage struct {
	Data   []byte `json:"-"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Thumbhash computes the thumbhash placeholder of the image. Sources
// larger than 100px on a side are decoded reduced via the
// shrink-on-load path before hashing.
func Thumbhash(data []byte) (ThumbhashResult, error) {
	meta, err := probe(data)
	if err != nil {
		return ThumbhashResult{}, err
	}

	targetW, targetH := meta.Width, meta.Height
	if meta.Width > thumbhashMaxDim || meta.Height > thumbhashMaxDim {
		scale := float64(thumbhashMaxDim) / float64(max(meta.Width, meta.Height))
		targetW = max(int(math.Round(float64(meta.Width)*scale)), 1)
		targetH = max(int(math.Round(float64(meta.Height)*scale)), 1)
	}

	img, err := decodeNear(data, meta, targetW, targetH)
	if err != nil {
		return ThumbhashResult{}, err
	}

	hash := thumbhash.EncodeImage(codec.ToRGBA(img))
	return ThumbhashResult{
		Hash:     base64.StdEncoding.EncodeToString(hash),
		Width:    meta.Width,
		Height:   meta.Height,
		HasAlpha: meta.HasAlpha,
	}, nil
}

// ThumbhashToRGBA decodes a base64 thumbhash back into its
// placeholder pixels.
func ThumbhashToRGBA(hash string) (ThumbhashImage, error) {
	raw, err := base64.StdEncoding.DecodeString(hash)
	if err != nil {
		return ThumbhashImage{}, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	img, err := thumbhash.DecodeImage(raw)
	if err != nil {
		return ThumbhashImage{}, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}

	rgba := codec.ToRGBA(img)
	bounds := rgba.Bounds()
	return ThumbhashImage{
		Data:   rgba.Pix,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
