package imageturbo

import (
	"errors"
	"image/color"
	"testing"
)

func TestImageHashDefaults(t *testing.T) {
	res, err := ImageHash(gradientPNG(t, 64, 64), HashOptions{})
	if err != nil {
		t.Fatalf("ImageHash() error: %v", err)
	}
	if res.Algorithm != HashPHash {
		t.Errorf("algorithm = %q, want default phash", res.Algorithm)
	}
	if res.Size != 8 {
		t.Errorf("size = %d, want default 8", res.Size)
	}
	if res.Hash == "" {
		t.Error("hash is empty")
	}
	if res.Width != 64 || res.Height != 64 {
		t.Errorf("dimensions = %dx%d, want 64x64", res.Width, res.Height)
	}
}

func TestImageHashAlgorithms(t *testing.T) {
	src := gradientPNG(t, 64, 64)
	for _, alg := range []string{HashPHash, HashDHash, HashAHash, HashBlockHash} {
		t.Run(alg, func(t *testing.T) {
			res, err := ImageHash(src, HashOptions{Algorithm: alg, Size: 16})
			if err != nil {
				t.Fatalf("ImageHash(%s) error: %v", alg, err)
			}
			if res.Hash == "" {
				t.Errorf("ImageHash(%s) produced an empty hash", alg)
			}
			// Every algorithm's hash must round-trip through distance.
			dist, err := ImageHashDistance(res.Hash, res.Hash)
			if err != nil {
				t.Fatalf("distance(%s) error: %v", alg, err)
			}
			if dist != 0 {
				t.Errorf("self-distance(%s) = %d, want 0", alg, dist)
			}
		})
	}
}

func TestImageHashRejectsBadOptions(t *testing.T) {
	src := gradientPNG(t, 32, 32)
	if _, err := ImageHash(src, HashOptions{Size: 12}); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("size error = %v, want ErrInvalidOption", err)
	}
	if _, err := ImageHash(src, HashOptions{Algorithm: "md5"}); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("algorithm error = %v, want ErrInvalidOption", err)
	}
}

func TestImageHashDistanceSymmetric(t *testing.T) {
	a, err := ImageHash(gradientPNG(t, 64, 64), HashOptions{})
	if err != nil {
		t.Fatalf("ImageHash() error: %v", err)
	}
	b, err := ImageHash(pngBytes(t, 64, 64, color.NRGBA{R: 255, A: 255}), HashOptions{})
	if err != nil {
		t.Fatalf("ImageHash() error: %v", err)
	}

	ab, err := ImageHashDistance(a.Hash, b.Hash)
	if err != nil {
		t.Fatalf("distance error: %v", err)
	}
	ba, err := ImageHashDistance(b.Hash, a.Hash)
	if err != nil {
		t.Fatalf("distance error: %v", err)
	}
	if ab != ba {
		t.Errorf("distance not symmetric: %d vs %d", ab, ba)
	}
	if ab < 0 {
		t.Errorf("distance %d is negative", ab)
	}
}

func TestImageHashDistanceInvalid(t *testing.T) {
	valid, err := ImageHash(gradientPNG(t, 32, 32), HashOptions{})
	if err != nil {
		t.Fatalf("ImageHash() error: %v", err)
	}
	if _, err := ImageHashDistance("!!! not base64 !!!", valid.Hash); !errors.Is(err, ErrInvalidHash) {
		t.Errorf("error = %v, want ErrInvalidHash", err)
	}
	if _, err := ImageHashDistance(valid.Hash, "AAAA"); !errors.Is(err, ErrInvalidHash) {
		t.Errorf("error = %v, want ErrInvalidHash", err)
	}
}

func TestBlockhashSeparatesImages(t *testing.T) {
	dark, err := ImageHash(pngBytes(t, 64, 64, color.NRGBA{A: 255}), HashOptions{Algorithm: HashBlockHash})
	if err != nil {
		t.Fatalf("ImageHash() error: %v", err)
	}
	busy, err := ImageHash(gradientPNG(t, 64, 64), HashOptions{Algorithm: HashBlockHash})
	if err != nil {
		t.Fatalf("ImageHash() error: %v", err)
	}
	dist, err := ImageHashDistance(dark.Hash, busy.Hash)
	if err != nil {
		t.Fatalf("distance error: %v", err)
	}
	if dist == 0 {
		t.Error("blockhash cannot tell a flat image from a gradient")
	}
}

func TestBlurhash(t *testing.T) {
	res, err := Blurhash(gradientPNG(t, 100, 50), BlurhashOptions{})
	if err != nil {
		t.Fatalf("Blurhash() error: %v", err)
	}
	if res.Hash == "" {
		t.Error("blurhash is empty")
	}
	if res.Width != 100 || res.Height != 50 {
		t.Errorf("dimensions = %dx%d, want 100x50", res.Width, res.Height)
	}
}

func TestBlurhashRejectsBadComponents(t *testing.T) {
	if _, err := Blurhash(gradientPNG(t, 10, 10), BlurhashOptions{ComponentsX: 10}); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("error = %v, want ErrInvalidOption", err)
	}
}
