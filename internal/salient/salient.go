package salient

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/transform"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Crop is a scored window in source pixel coordinates.
type Crop struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Score  float64 `json:"score"`
}

// Interest-map weights and search parameters.
const (
	detailWeight     = 1.0
	saturationWeight = 0.2
	skinWeight       = 0.4

	analysisMaxDim = 256 // longest side of the downsampled analysis raster
	searchStep     = 8   // window stride in analysis pixels
)

// FindBestCrop returns the highest-scoring window of exactly
// targetW x targetH source pixels.
func FindBestCrop(img image.Image, targetW, targetH int) (Crop, error) {
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if targetW <= 0 || targetH <= 0 {
		return Crop{}, fmt.Errorf("salient: target %dx%d must be positive", targetW, targetH)
	}
	if targetW > srcW || targetH > srcH {
		return Crop{}, fmt.Errorf("salient: target %dx%d exceeds image %dx%d", targetW, targetH, srcW, srcH)
	}

	// Downsample for analysis; the crop is mapped back afterwards.
	scale := 1.0
	analysis := img
	if srcW > analysisMaxDim || srcH > analysisMaxDim {
		scale = float64(analysisMaxDim) / float64(max(srcW, srcH))
		analysis = transform.Resize(img,
			max(1, int(float64(srcW)*scale)),
			max(1, int(float64(srcH)*scale)),
			transform.Linear)
	}

	interest := interestMap(analysis)
	aw := analysis.Bounds().Dx()
	ah := analysis.Bounds().Dy()

	// Candidate window size in analysis space, at least one pixel.
	cw := max(1, int(float64(targetW)*scale))
	ch := max(1, int(float64(targetH)*scale))

	bestX, bestY := 0, 0
	bestScore := math.Inf(-1)
	for y := 0; y+ch <= ah; y += stepFor(ah - ch) {
		for x := 0; x+cw <= aw; x += stepFor(aw - cw) {
			s := scoreWindow(interest, aw, x, y, cw, ch)
			if s > bestScore {
				bestScore = s
				bestX, bestY = x, y
			}
		}
	}

	// Map back to source coordinates and clamp so the full target fits.
	x := int(float64(bestX) / scale)
	y := int(float64(bestY) / scale)
	if x > srcW-targetW {
		x = srcW - targetW
	}
	if y > srcH-targetH {
		y = srcH - targetH
	}

	return Crop{X: x, Y: y, Width: targetW, Height: targetH, Score: bestScore}, nil
}

// stepFor keeps the stride from skipping the final position when the
// slack is smaller than the configured step.
func stepFor(slack int) int {
	if slack < searchStep {
		return 1
	}
	return searchStep
}

// interestMap combines edge detail, saturation and skin likelihood
// into one weight per analysis pixel.
func interestMap(img image.Image) []float64 {
	edges := effect.Sobel(img)
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	m := make([]float64, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			er, eg, eb, _ := edges.At(edges.Bounds().Min.X+x, edges.Bounds().Min.Y+y).RGBA()
			detail := float64(er>>8+eg>>8+eb>>8) / (3 * 255)

			var sat, skin float64
			if c, ok := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y)); ok {
				hue, s, v := c.Hsv()
				sat = s
				skin = skinLikeness(hue, s, v)
			}

			m[y*w+x] = detail*detailWeight + sat*saturationWeight + skin*skinWeight
		}
	}
	return m
}

// skinLikeness scores how close an HSV triple sits to typical skin
// tones: warm hues with moderate saturation and brightness.
func skinLikeness(hue, s, v float64) float64 {
	if hue > 180 {
		hue -= 360
	}
	if hue < -30 || hue > 50 {
		return 0
	}
	if s < 0.1 || s > 0.8 || v < 0.2 {
		return 0
	}
	// Peak at hue 20, falling off linearly to the band edges.
	d := math.Abs(hue-20) / 50
	if d > 1 {
		return 0
	}
	return 1 - d
}

// scoreWindow sums interest over the window, weighting pixels by
// proximity to the window center.
func scoreWindow(interest []float64, stride, x, y, w, h int) float64 {
	cx := float64(x) + float64(w)/2
	cy := float64(y) + float64(h)/2
	maxD2 := (float64(w)*float64(w) + float64(h)*float64(h)) / 4

	var total float64
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			dx := float64(xx) - cx
			dy := float64(yy) - cy
			centerBias := 1 - 0.5*(dx*dx+dy*dy)/maxD2
			total += interest[yy*stride+xx] * centerBias
		}
	}
	return total
}
