package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	cwebp "github.com/chai2010/webp"
	libjpeg "github.com/pixiv/go-libjpeg/jpeg"
)

// EncodeJPEG encodes img as baseline JPEG at the given quality (1-100).
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	err := libjpeg.Encode(&buf, ToRGBA(img), &libjpeg.EncoderOptions{Quality: quality})
	if err != nil {
		return nil, fmt.Errorf("codec: jpeg encode: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodePNG encodes img as PNG with the given compression level.
func EncodePNG(img image.Image, level png.CompressionLevel) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: level}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("codec: png encode: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeWebP encodes img as WebP. Quality is ignored when lossless is
// set.
func EncodeWebP(img image.Image, quality int, lossless bool) ([]byte, error) {
	var buf bytes.Buffer
	err := cwebp.Encode(&buf, ToNRGBA(img), &cwebp.Options{
		Lossless: lossless,
		Quality:  float32(quality),
	})
	if err != nil {
		return nil, fmt.Errorf("codec: webp encode: %w", err)
	}
	return buf.Bytes(), nil
}
