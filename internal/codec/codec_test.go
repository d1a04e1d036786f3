package codec

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/ironsheep/image-turbo/internal/imagemeta"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 11), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestDeriveTarget(t *testing.T) {
	tests := []struct {
		name         string
		srcW, srcH   int
		reqW, reqH   int
		wantW, wantH int
	}{
		{"both given", 1000, 500, 200, 100, 200, 100},
		{"height derived", 1000, 500, 200, 0, 200, 100},
		{"width derived", 1000, 500, 0, 100, 200, 100},
		{"height rounds half up", 300, 150, 101, 0, 101, 51},
		{"derived clamps to one", 10000, 10, 3, 0, 3, 1},
		{"no target", 1000, 500, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := DeriveTarget(tt.srcW, tt.srcH, tt.reqW, tt.reqH)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("DeriveTarget() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestPlanDecode(t *testing.T) {
	meta := imagemeta.Metadata{Width: 800, Height: 600, Format: imagemeta.FormatJPEG}

	plan := PlanDecode(meta, 200, 0)
	if !plan.Reduced {
		t.Error("plan with a target should request a reduced decode")
	}
	if plan.TargetWidth != 200 || plan.TargetHeight != 150 {
		t.Errorf("target = %dx%d, want 200x150", plan.TargetWidth, plan.TargetHeight)
	}

	full := PlanDecode(meta, 0, 0)
	if full.Reduced {
		t.Error("plan without a target should request a full decode")
	}
}

func TestDecodePNG(t *testing.T) {
	img, err := Decode(encodePNG(t, 32, 24))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("decoded %dx%d, want 32x24", b.Dx(), b.Dy())
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("definitely not pixels")); err == nil {
		t.Error("Decode() should fail on garbage input")
	}
}

// DecodeReduced must never return a raster smaller than the plan's
// target, no matter the format's decode granularity.
func TestDecodeReducedNeverUndershoots(t *testing.T) {
	data := encodePNG(t, 400, 300)
	meta, err := imagemeta.Probe(data)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}

	plan := PlanDecode(meta, 100, 0)
	img, err := DecodeReduced(data, meta, plan)
	if err != nil {
		t.Fatalf("DecodeReduced() error: %v", err)
	}
	b := img.Bounds()
	if b.Dx() < plan.TargetWidth || b.Dy() < plan.TargetHeight {
		t.Errorf("decoded %dx%d undershoots target %dx%d",
			b.Dx(), b.Dy(), plan.TargetWidth, plan.TargetHeight)
	}
	if b.Dx() >= 400 {
		t.Errorf("decoded %dx%d was not reduced at all", b.Dx(), b.Dy())
	}
}

func TestDecodeReducedSkipsUpscale(t *testing.T) {
	data := encodePNG(t, 50, 50)
	meta, err := imagemeta.Probe(data)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	plan := Plan{TargetWidth: 200, TargetHeight: 200, Reduced: true}
	img, err := DecodeReduced(data, meta, plan)
	if err != nil {
		t.Fatalf("DecodeReduced() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 50 || b.Dy() != 50 {
		t.Errorf("decoded %dx%d, small sources must never be upscaled", b.Dx(), b.Dy())
	}
}

func TestEncodeRoundTrips(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 0, A: 255})
		}
	}

	t.Run("jpeg", func(t *testing.T) {
		data, err := EncodeJPEG(src, 85)
		if err != nil {
			t.Fatalf("EncodeJPEG() error: %v", err)
		}
		img, err := Decode(data)
		if err != nil {
			t.Fatalf("decode jpeg output: %v", err)
		}
		if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
			t.Errorf("round trip %dx%d, want 16x16", b.Dx(), b.Dy())
		}
	})
	t.Run("png", func(t *testing.T) {
		data, err := EncodePNG(src, png.DefaultCompression)
		if err != nil {
			t.Fatalf("EncodePNG() error: %v", err)
		}
		if _, err := Decode(data); err != nil {
			t.Fatalf("decode png output: %v", err)
		}
	})
	t.Run("webp", func(t *testing.T) {
		data, err := EncodeWebP(src, 80, false)
		if err != nil {
			t.Fatalf("EncodeWebP() error: %v", err)
		}
		if got := imagemeta.DetectFormat(data); got != imagemeta.FormatWebP {
			t.Errorf("output detected as %q, want webp", got)
		}
	})
}

func TestToRGBA(t *testing.T) {
	src := image.NewYCbCr(image.Rect(0, 0, 8, 8), image.YCbCrSubsampleRatio420)
	rgba := ToRGBA(src)
	if b := rgba.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("converted %dx%d, want 8x8", b.Dx(), b.Dy())
	}
}
