package imageturbo

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"sort"

	"github.com/bbrks/go-blurhash"
	"github.com/corona10/goimagehash"

	"github.com/ironsheep/image-turbo/internal/codec"
)

// Perceptual hash algorithm names.
const (
	HashPHash     = "phash"
	HashDHash     = "dhash"
	HashAHash     = "ahash"
	HashBlockHash = "blockhash"
)

// HashOptions controls ImageHash. Zero values select the defaults:
// algorithm phash, size 8.
type HashOptions struct {
	// Algorithm is one of phash, dhash, ahash, blockhash.
	Algorithm string `json:"algorithm,omitempty"`

	// Size is the hash grid edge length: 8, 16 or 32.
	Size int `json:"size,omitempty"`
}

// HashResult carries a perceptual hash and the context it was
// computed in.
type HashResult struct {
	// Hash is the base64-encoded binary hash.
	Hash string `json:"hash"`

	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Size      int    `json:"size"`
	Algorithm string `json:"algorithm"`
}

// ImageHash computes a perceptual hash of the image. Two hashes made
// with the same algorithm and size can be compared with
// ImageHashDistance.
func ImageHash(data []byte, opts HashOptions) (HashResult, error) {
	algorithm := opts.Algorithm
	if algorithm == "" {
		algorithm = HashPHash
	}
	size := opts.Size
	if size == 0 {
		size = 8
	}
	switch size {
	case 8, 16, 32:
	default:
		return HashResult{}, fmt.Errorf("%w: hash size %d not in {8, 16, 32}", ErrInvalidOption, size)
	}

	img, err := decode(data)
	if err != nil {
		return HashResult{}, err
	}

	var hash *goimagehash.ExtImageHash
	switch algorithm {
	case HashPHash:
		hash, err = goimagehash.ExtPerceptionHash(img, size, size)
	case HashDHash:
		hash, err = goimagehash.ExtDifferenceHash(img, size, size)
	case HashAHash:
		hash, err = goimagehash.ExtAverageHash(img, size, size)
	case HashBlockHash:
		hash = blockhash(img, size)
	default:
		return HashResult{}, fmt.Errorf("%w: unknown hash algorithm %q", ErrInvalidOption, algorithm)
	}
	if err != nil {
		return HashResult{}, fmt.Errorf("%w: %v", ErrProcessing, err)
	}

	var buf bytes.Buffer
	if err := hash.Dump(&buf); err != nil {
		return HashResult{}, fmt.Errorf("%w: %v", ErrProcessing, err)
	}

	bounds := img.Bounds()
	return HashResult{
		Hash:      base64.StdEncoding.EncodeToString(buf.Bytes()),
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Size:      size,
		Algorithm: algorithm,
	}, nil
}

// ImageHashDistance decodes two base64 hashes and returns their
// Hamming distance. Zero means bit-identical; under roughly 5 is very
// similar, under 10 similar, beyond that different. Comparing hashes
// of different sizes is an error.
func ImageHashDistance(hashA, hashB string) (int, error) {
	a, err := loadHash(hashA)
	if err != nil {
		return 0, err
	}
	b, err := loadHash(hashB)
	if err != nil {
		return 0, err
	}
	dist, err := a.Distance(b)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrProcessing, err)
	}
	return dist, nil
}

func loadHash(s string) (*goimagehash.ExtImageHash, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	hash, err := goimagehash.LoadExtImageHash(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return hash, nil
}

// blockhash implements the block-mean hash: pixel luminance sums are
// accumulated per grid cell, and each cell is compared against the
// median of its horizontal quarter of the grid. Transparent pixels
// count as white, matching the reference blockhash behavior.
func blockhash(img image.Image, size int) *goimagehash.ExtImageHash {
	rgba := codec.ToRGBA(img)
	bounds := rgba.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	values := make([]float64, size*size)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := rgba.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			r, g, b, a := rgba.Pix[i], rgba.Pix[i+1], rgba.Pix[i+2], rgba.Pix[i+3]
			v := float64(int(r) + int(g) + int(b))
			if a == 0 {
				v = 765
			}
			bx := x * size / w
			by := y * size / h
			values[by*size+bx] += v
		}
	}

	bits := make([]uint64, (size*size+63)/64)
	band := size * size / 4
	for start := 0; start < size*size; start += band {
		m := median(values[start : start+band])
		for i := start; i < start+band; i++ {
			if values[i] > m {
				bits[i/64] |= 1 << uint(63-i%64)
			}
		}
	}
	return goimagehash.NewExtImageHash(bits, goimagehash.Unknown, size*size)
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// BlurhashOptions controls Blurhash. Zero components select the 4x3
// default.
type BlurhashOptions struct {
	ComponentsX int `json:"componentsX,omitempty"`
	ComponentsY int `json:"componentsY,omitempty"`
}

// BlurhashResult carries the blurhash string and the hashed
// dimensions.
type BlurhashResult struct {
	Hash   string `json:"hash"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Blurhash computes the blurhash placeholder string for the image.
func Blurhash(data []byte, opts BlurhashOptions) (BlurhashResult, error) {
	cx := opts.ComponentsX
	if cx == 0 {
		cx = 4
	}
	cy := opts.ComponentsY
	if cy == 0 {
		cy = 3
	}
	if cx < 1 || cx > 9 || cy < 1 || cy > 9 {
		return BlurhashResult{}, fmt.Errorf("%w: blurhash components must be 1-9", ErrInvalidOption)
	}

	img, err := decode(data)
	if err != nil {
		return BlurhashResult{}, err
	}
	hash, err := blurhash.Encode(cx, cy, codec.ToRGBA(img))
	if err != nil {
		return BlurhashResult{}, fmt.Errorf("%w: %v", ErrProcessing, err)
	}
	bounds := img.Bounds()
	return BlurhashResult{Hash: hash, Width: bounds.Dx(), Height: bounds.Dy()}, nil
}
