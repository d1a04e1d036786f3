package imageturbo

import (
	"errors"
	"testing"
)

func TestThumbnailDerivesHeight(t *testing.T) {
	// round(100 * 150 / 300) = 50
	res, err := Thumbnail(gradientPNG(t, 300, 150), ThumbnailOptions{Width: 100})
	if err != nil {
		t.Fatalf("Thumbnail() error: %v", err)
	}
	if res.Width != 100 || res.Height != 50 {
		t.Errorf("thumbnail %dx%d, want 100x50", res.Width, res.Height)
	}
	if res.OriginalWidth != 300 || res.OriginalHeight != 150 {
		t.Errorf("original %dx%d, want 300x150", res.OriginalWidth, res.OriginalHeight)
	}
}

func TestThumbnailDerivedHeightClampsToOne(t *testing.T) {
	res, err := Thumbnail(gradientPNG(t, 1000, 10), ThumbnailOptions{Width: 3})
	if err != nil {
		t.Fatalf("Thumbnail() error: %v", err)
	}
	if res.Height != 1 {
		t.Errorf("height = %d, want clamp to 1", res.Height)
	}
}

func TestThumbnailFormatMapping(t *testing.T) {
	t.Run("png input stays png", func(t *testing.T) {
		res, err := Thumbnail(gradientPNG(t, 100, 100), ThumbnailOptions{Width: 50})
		if err != nil {
			t.Fatalf("Thumbnail() error: %v", err)
		}
		if res.Format != FormatPNG {
			t.Errorf("format = %q, want png", res.Format)
		}
		if meta, _ := ReadMetadata(res.Data); meta.Format != FormatPNG {
			t.Errorf("encoded bytes are %q, want png", meta.Format)
		}
	})
	t.Run("jpeg input stays jpeg", func(t *testing.T) {
		res, err := Thumbnail(jpegBytes(t, 100, 100), ThumbnailOptions{Width: 50})
		if err != nil {
			t.Fatalf("Thumbnail() error: %v", err)
		}
		if res.Format != FormatJPEG {
			t.Errorf("format = %q, want jpeg", res.Format)
		}
	})
	t.Run("explicit format wins", func(t *testing.T) {
		res, err := Thumbnail(gradientPNG(t, 100, 100), ThumbnailOptions{Width: 50, Format: FormatWebP})
		if err != nil {
			t.Fatalf("Thumbnail() error: %v", err)
		}
		if res.Format != FormatWebP {
			t.Errorf("format = %q, want webp", res.Format)
		}
		if meta, _ := ReadMetadata(res.Data); meta.Format != FormatWebP {
			t.Errorf("encoded bytes are %q, want webp", meta.Format)
		}
	})
	t.Run("unknown explicit format rejected", func(t *testing.T) {
		_, err := Thumbnail(gradientPNG(t, 100, 100), ThumbnailOptions{Width: 50, Format: "tiff"})
		if !errors.Is(err, ErrInvalidOption) {
			t.Errorf("error = %v, want ErrInvalidOption", err)
		}
	})
}

func TestThumbnailRequiresWidth(t *testing.T) {
	if _, err := Thumbnail(gradientPNG(t, 10, 10), ThumbnailOptions{}); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("error = %v, want ErrInvalidOption", err)
	}
}

func TestThumbnailShrinkOnLoad(t *testing.T) {
	src := gradientPNG(t, 400, 400)

	res, err := Thumbnail(src, ThumbnailOptions{Width: 100})
	if err != nil {
		t.Fatalf("Thumbnail() error: %v", err)
	}
	if !res.ShrinkOnLoadUsed {
		t.Error("default shrink-on-load did not engage for a 4x downscale")
	}

	off := false
	res, err = Thumbnail(src, ThumbnailOptions{Width: 100, ShrinkOnLoad: &off})
	if err != nil {
		t.Fatalf("Thumbnail() error: %v", err)
	}
	if res.ShrinkOnLoadUsed {
		t.Error("ShrinkOnLoadUsed reported true with shrink-on-load disabled")
	}
	if res.Width != 100 || res.Height != 100 {
		t.Errorf("full-decode thumbnail %dx%d, want 100x100", res.Width, res.Height)
	}
}

func TestThumbnailUpscaleNotShrunk(t *testing.T) {
	res, err := Thumbnail(gradientPNG(t, 50, 50), ThumbnailOptions{Width: 200})
	if err != nil {
		t.Fatalf("Thumbnail() error: %v", err)
	}
	if res.ShrinkOnLoadUsed {
		t.Error("upscaling must never report shrink-on-load")
	}
	if res.Width != 200 || res.Height != 200 {
		t.Errorf("upscaled thumbnail %dx%d, want 200x200", res.Width, res.Height)
	}
}

func TestThumbnailFastModeTolerance(t *testing.T) {
	// Reduced decode of 424x400 at a 200x200 target yields 212x200;
	// ratios 1.06 and 1.0 sit inside the window, so fast mode keeps
	// the decoded raster as-is.
	res, err := Thumbnail(gradientPNG(t, 424, 400), ThumbnailOptions{Width: 200, Height: 200, FastMode: true})
	if err != nil {
		t.Fatalf("Thumbnail() error: %v", err)
	}
	if res.Width != 212 || res.Height != 200 {
		t.Errorf("fast thumbnail %dx%d, want the tolerated 212x200", res.Width, res.Height)
	}

	// Exact mode must hit the target exactly.
	res, err = Thumbnail(gradientPNG(t, 424, 400), ThumbnailOptions{Width: 200, Height: 200})
	if err != nil {
		t.Fatalf("Thumbnail() error: %v", err)
	}
	if res.Width != 200 || res.Height != 200 {
		t.Errorf("exact thumbnail %dx%d, want 200x200", res.Width, res.Height)
	}
}

func TestThumbnailBuffer(t *testing.T) {
	res, err := Thumbnail(gradientPNG(t, 80, 80), ThumbnailOptions{Width: 20})
	if err != nil {
		t.Fatalf("Thumbnail() error: %v", err)
	}
	buf, err := ThumbnailBuffer(gradientPNG(t, 80, 80), ThumbnailOptions{Width: 20})
	if err != nil {
		t.Fatalf("ThumbnailBuffer() error: %v", err)
	}
	if len(buf) == 0 || len(buf) != len(res.Data) {
		t.Errorf("buffer length %d, want %d", len(buf), len(res.Data))
	}
}
