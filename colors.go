package imageturbo

import (
	"fmt"
	"image/color"

	color_extractor "github.com/marekm4/color-extractor"
)

// ColorEntry is one extracted color with its hex form.
type ColorEntry struct {
	R   uint8  `json:"r"`
	G   uint8  `json:"g"`
	B   uint8  `json:"b"`
	Hex string `json:"hex"`
}

// DominantColorsResult lists the extracted colors ordered by
// dominance. Primary duplicates the first entry for convenience.
type DominantColorsResult struct {
	Colors  []ColorEntry `json:"colors"`
	Primary ColorEntry   `json:"primary"`
}

// DominantColors extracts up to count dominant colors from the image,
// most dominant first. Count defaults to 5. When the extractor finds
// nothing, a single black entry is returned instead of an error.
func DominantColors(data []byte, count int) (DominantColorsResult, error) {
	if count < 0 {
		return DominantColorsResult{}, fmt.Errorf("%w: negative color count", ErrInvalidOption)
	}
	if count == 0 {
		count = 5
	}

	img, err := decode(data)
	if err != nil {
		return DominantColorsResult{}, err
	}

	extracted := color_extractor.ExtractColors(img)
	if len(extracted) > count {
		extracted = extracted[:count]
	}

	entries := make([]ColorEntry, 0, len(extracted))
	for _, c := range extracted {
		entries = append(entries, colorEntry(c))
	}
	if len(entries) == 0 {
		entries = []ColorEntry{{R: 0, G: 0, B: 0, Hex: "#000000"}}
	}
	return DominantColorsResult{Colors: entries, Primary: entries[0]}, nil
}

func colorEntry(c color.Color) ColorEntry {
	r, g, b, _ := c.RGBA()
	e := ColorEntry{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
	e.Hex = fmt.Sprintf("#%02X%02X%02X", e.R, e.G, e.B)
	return e
}
