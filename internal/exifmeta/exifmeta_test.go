package exifmeta

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/jpeg"
	"testing"

	"github.com/ironsheep/image-turbo/internal/imagemeta"
)

func encodeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("jpeg encode: %v", err)
	}
	return buf.Bytes()
}

func TestFieldsEmpty(t *testing.T) {
	if !(Fields{}).Empty() {
		t.Error("zero Fields should be empty")
	}
	if (Fields{Artist: "someone"}).Empty() {
		t.Error("Fields with Artist should not be empty")
	}
	if (Fields{Orientation: 1}).Empty() {
		t.Error("Fields with Orientation should not be empty")
	}
}

func TestWriteJPEGAddsExif(t *testing.T) {
	src := encodeJPEG(t, 8, 8)
	if has, _ := HasJPEGExif(src); has {
		t.Fatal("stdlib-encoded jpeg should start without exif")
	}

	out, err := WriteJPEG(src, Fields{Artist: "tester", Software: "image-turbo"})
	if err != nil {
		t.Fatalf("WriteJPEG() error: %v", err)
	}
	has, err := HasJPEGExif(out)
	if err != nil {
		t.Fatalf("HasJPEGExif() error: %v", err)
	}
	if !has {
		t.Error("written jpeg has no exif segment")
	}

	// Output must still decode.
	if _, err := jpeg.Decode(bytes.NewReader(out)); err != nil {
		t.Errorf("written jpeg no longer decodes: %v", err)
	}
}

func TestWriteJPEGRejectsBadOrientation(t *testing.T) {
	if _, err := WriteJPEG(encodeJPEG(t, 8, 8), Fields{Orientation: 9}); err == nil {
		t.Error("orientation 9 should be rejected")
	}
}

func TestStripJPEGRemovesExif(t *testing.T) {
	withExif, err := WriteJPEG(encodeJPEG(t, 8, 8), Fields{Copyright: "c"})
	if err != nil {
		t.Fatalf("WriteJPEG() error: %v", err)
	}

	stripped, err := StripJPEG(withExif)
	if err != nil {
		t.Fatalf("StripJPEG() error: %v", err)
	}
	if has, _ := HasJPEGExif(stripped); has {
		t.Error("stripped jpeg still carries exif")
	}
	if _, err := jpeg.Decode(bytes.NewReader(stripped)); err != nil {
		t.Errorf("stripped jpeg no longer decodes: %v", err)
	}
}

// buildWebP assembles a minimal RIFF container from raw chunks.
func buildWebP(chunks ...riffChunk) []byte {
	return writeWebP(chunks)
}

func vp8lChunk(width, height int) riffChunk {
	bits := uint32(width-1) | uint32(height-1)<<14
	payload := []byte{0x2F}
	payload = binary.LittleEndian.AppendUint32(payload, bits)
	return riffChunk{fourCC: "VP8L", payload: payload}
}

func TestParseWebPRoundTrip(t *testing.T) {
	src := buildWebP(vp8lChunk(10, 10), riffChunk{fourCC: "EXIF", payload: []byte{1, 2, 3}})
	chunks, err := parseWebP(src)
	if err != nil {
		t.Fatalf("parseWebP() error: %v", err)
	}
	if len(chunks) != 2 || chunks[0].fourCC != "VP8L" || chunks[1].fourCC != "EXIF" {
		t.Fatalf("unexpected chunks: %+v", chunks)
	}
	if !bytes.Equal(writeWebP(chunks), src) {
		t.Error("write(parse(x)) differs from x")
	}
}

func TestParseWebPOddChunkPadding(t *testing.T) {
	src := buildWebP(vp8lChunk(10, 10), riffChunk{fourCC: "EXIF", payload: []byte{1, 2, 3}},
		riffChunk{fourCC: "XMP ", payload: []byte{9}})
	chunks, err := parseWebP(src)
	if err != nil {
		t.Fatalf("parseWebP() error: %v", err)
	}
	// The chunk after an odd-sized one must still parse cleanly.
	if chunks[len(chunks)-1].fourCC != "XMP " {
		t.Errorf("lost the chunk following an odd-sized payload: %+v", chunks)
	}
}

func TestWriteWebPSynthesizesVP8X(t *testing.T) {
	src := buildWebP(vp8lChunk(20, 30))
	meta := imagemeta.Metadata{Width: 20, Height: 30, Format: imagemeta.FormatWebP}

	out, err := WriteWebP(src, meta, Fields{Artist: "tester"})
	if err != nil {
		t.Fatalf("WriteWebP() error: %v", err)
	}
	chunks, err := parseWebP(out)
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if chunks[0].fourCC != "VP8X" {
		t.Fatalf("first chunk = %q, want synthesized VP8X", chunks[0].fourCC)
	}
	if chunks[0].payload[0]&vp8xFlagExif == 0 {
		t.Error("VP8X exif flag not set")
	}
	w := int(chunks[0].payload[4]) | int(chunks[0].payload[5])<<8 | int(chunks[0].payload[6])<<16
	if w+1 != 20 {
		t.Errorf("VP8X canvas width = %d, want 20", w+1)
	}

	var hasExif bool
	for _, c := range chunks {
		if c.fourCC == "EXIF" && len(c.payload) > 0 {
			hasExif = true
		}
	}
	if !hasExif {
		t.Error("output has no EXIF chunk")
	}
}

func TestStripWebP(t *testing.T) {
	src := buildWebP(vp8lChunk(20, 30))
	meta := imagemeta.Metadata{Width: 20, Height: 30, Format: imagemeta.FormatWebP}
	withExif, err := WriteWebP(src, meta, Fields{Model: "camera"})
	if err != nil {
		t.Fatalf("WriteWebP() error: %v", err)
	}

	stripped, err := StripWebP(withExif)
	if err != nil {
		t.Fatalf("StripWebP() error: %v", err)
	}
	chunks, err := parseWebP(stripped)
	if err != nil {
		t.Fatalf("parse stripped: %v", err)
	}
	for _, c := range chunks {
		if c.fourCC == "EXIF" {
			t.Error("stripped webp still carries an EXIF chunk")
		}
		if c.fourCC == "VP8X" && c.payload[0]&vp8xFlagExif != 0 {
			t.Error("VP8X exif flag still set after strip")
		}
		if c.fourCC == "VP8L" {
			// Pixel chunk must be byte-identical.
			want := vp8lChunk(20, 30)
			if !bytes.Equal(c.payload, want.payload) {
				t.Error("pixel data changed during exif surgery")
			}
		}
	}
}
