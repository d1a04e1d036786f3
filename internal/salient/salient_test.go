package salient

import (
	"image"
	"image/color"
	"math/rand"
	"testing"
)

// busyCornerImage is flat gray except for a high-detail, saturated
// patch in the bottom-right quadrant.
func busyCornerImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	rng := rand.New(rand.NewSource(1))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBA{R: 128, G: 128, B: 128, A: 255}
			if x > width*2/3 && y > height*2/3 {
				c = color.NRGBA{
					R: uint8(rng.Intn(256)),
					G: uint8(rng.Intn(64)),
					B: uint8(rng.Intn(64)),
					A: 255,
				}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFindBestCropDimensions(t *testing.T) {
	img := busyCornerImage(300, 300)
	crop, err := FindBestCrop(img, 100, 100)
	if err != nil {
		t.Fatalf("FindBestCrop() error: %v", err)
	}
	if crop.Width != 100 || crop.Height != 100 {
		t.Errorf("crop size %dx%d, want exactly 100x100", crop.Width, crop.Height)
	}
	if crop.X < 0 || crop.Y < 0 || crop.X+crop.Width > 300 || crop.Y+crop.Height > 300 {
		t.Errorf("crop (%d,%d)+%dx%d escapes the image", crop.X, crop.Y, crop.Width, crop.Height)
	}
}

func TestFindBestCropPrefersDetail(t *testing.T) {
	img := busyCornerImage(300, 300)
	crop, err := FindBestCrop(img, 100, 100)
	if err != nil {
		t.Fatalf("FindBestCrop() error: %v", err)
	}
	// The window should land in the detailed bottom-right region, not
	// the flat top-left corner.
	if crop.X == 0 && crop.Y == 0 {
		t.Errorf("crop stayed at the flat origin, score %v", crop.Score)
	}
}

func TestFindBestCropFullImage(t *testing.T) {
	img := busyCornerImage(120, 80)
	crop, err := FindBestCrop(img, 120, 80)
	if err != nil {
		t.Fatalf("FindBestCrop() error: %v", err)
	}
	if crop.X != 0 || crop.Y != 0 {
		t.Errorf("full-size crop starts at (%d,%d), want origin", crop.X, crop.Y)
	}
}

func TestFindBestCropLargeSource(t *testing.T) {
	// Larger than the analysis cap, exercising the downsample path.
	img := busyCornerImage(640, 480)
	crop, err := FindBestCrop(img, 320, 240)
	if err != nil {
		t.Fatalf("FindBestCrop() error: %v", err)
	}
	if crop.Width != 320 || crop.Height != 240 {
		t.Errorf("crop size %dx%d, want 320x240", crop.Width, crop.Height)
	}
	if crop.X+crop.Width > 640 || crop.Y+crop.Height > 480 {
		t.Errorf("crop (%d,%d)+%dx%d escapes the image", crop.X, crop.Y, crop.Width, crop.Height)
	}
}

func TestFindBestCropRejectsBadTargets(t *testing.T) {
	img := busyCornerImage(100, 100)
	if _, err := FindBestCrop(img, 0, 50); err == nil {
		t.Error("zero target width should be rejected")
	}
	if _, err := FindBestCrop(img, 101, 50); err == nil {
		t.Error("target wider than the source should be rejected")
	}
}
