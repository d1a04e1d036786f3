package exifmeta

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ironsheep/image-turbo/internal/imagemeta"
)

const (
	vp8xFlagExif  = 0x08
	vp8xFlagAlpha = 0x10
)

// exifPrefix is the APP1-style identifier some writers place before the
// TIFF structure inside a WebP EXIF chunk. Readers must accept both
// forms, so it is stripped on input and never emitted on output.
var exifPrefix = []byte("Exif\x00\x00")

type riffChunk struct {
	fourCC  string
	payload []byte
}

// WriteWebP returns data with the given fields merged into its EXIF
// chunk. A VP8X header chunk is synthesized from meta when the file
// does not already carry one, since the EXIF flag lives there.
func WriteWebP(data []byte, meta imagemeta.Metadata, fields Fields) ([]byte, error) {
	chunks, err := parseWebP(data)
	if err != nil {
		return nil, err
	}

	rootIb, err := newRootBuilder()
	if err != nil {
		return nil, err
	}
	for _, c := range chunks {
		if c.fourCC == "EXIF" {
			raw := bytes.TrimPrefix(c.payload, exifPrefix)
			if rootIb, err = builderFromRaw(raw); err != nil {
				return nil, err
			}
			break
		}
	}

	if err := apply(rootIb, fields); err != nil {
		return nil, err
	}
	raw, err := encodeRaw(rootIb)
	if err != nil {
		return nil, err
	}

	chunks = dropChunks(chunks, "EXIF")
	chunks = ensureVP8X(chunks, meta)
	setVP8XFlag(chunks, vp8xFlagExif, true)
	chunks = append(chunks, riffChunk{fourCC: "EXIF", payload: raw})

	return writeWebP(chunks), nil
}

// StripWebP returns data with its EXIF chunks removed and the VP8X
// EXIF flag cleared.
func StripWebP(data []byte) ([]byte, error) {
	chunks, err := parseWebP(data)
	if err != nil {
		return nil, err
	}
	chunks = dropChunks(chunks, "EXIF")
	setVP8XFlag(chunks, vp8xFlagExif, false)
	return writeWebP(chunks), nil
}

func parseWebP(data []byte) ([]riffChunk, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		return nil, fmt.Errorf("exifmeta: not a webp container")
	}
	var chunks []riffChunk
	pos := 12
	for pos+8 <= len(data) {
		fourCC := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		pos += 8
		if pos+size > len(data) {
			return nil, fmt.Errorf("exifmeta: truncated webp chunk %q", fourCC)
		}
		payload := make([]byte, size)
		copy(payload, data[pos:pos+size])
		chunks = append(chunks, riffChunk{fourCC: fourCC, payload: payload})
		pos += size
		if size%2 == 1 {
			pos++ // pad byte
		}
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("exifmeta: webp container has no chunks")
	}
	return chunks, nil
}

func writeWebP(chunks []riffChunk) []byte {
	var body bytes.Buffer
	body.WriteString("WEBP")
	for _, c := range chunks {
		body.WriteString(c.fourCC)
		var size [4]byte
		binary.LittleEndian.PutUint32(size[:], uint32(len(c.payload)))
		body.Write(size[:])
		body.Write(c.payload)
		if len(c.payload)%2 == 1 {
			body.WriteByte(0)
		}
	}

	out := make([]byte, 0, body.Len()+8)
	out = append(out, "RIFF"...)
	var riffSize [4]byte
	binary.LittleEndian.PutUint32(riffSize[:], uint32(body.Len()))
	out = append(out, riffSize[:]...)
	out = append(out, body.Bytes()...)
	return out
}

func dropChunks(chunks []riffChunk, fourCC string) []riffChunk {
	kept := chunks[:0]
	for _, c := range chunks {
		if c.fourCC != fourCC {
			kept = append(kept, c)
		}
	}
	return kept
}

// ensureVP8X guarantees a VP8X chunk leads the chunk list, building one
// from the probed dimensions and alpha bit when the file is a simple
// VP8 or VP8L bitstream.
func ensureVP8X(chunks []riffChunk, meta imagemeta.Metadata) []riffChunk {
	for _, c := range chunks {
		if c.fourCC == "VP8X" {
			return chunks
		}
	}

	payload := make([]byte, 10)
	if meta.HasAlpha {
		payload[0] |= vp8xFlagAlpha
	}
	putUint24(payload[4:7], uint32(meta.Width-1))
	putUint24(payload[7:10], uint32(meta.Height-1))

	out := make([]riffChunk, 0, len(chunks)+1)
	out = append(out, riffChunk{fourCC: "VP8X", payload: payload})
	out = append(out, chunks...)
	return out
}

func setVP8XFlag(chunks []riffChunk, flag byte, on bool) {
	for i := range chunks {
		if chunks[i].fourCC != "VP8X" || len(chunks[i].payload) < 1 {
			continue
		}
		if on {
			chunks[i].payload[0] |= flag
		} else {
			chunks[i].payload[0] &^= flag
		}
		return
	}
}

func putUint24(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}
