// Package imagemeta probes encoded image buffers for basic metadata
// without performing a full decode.
//
// The probe reads only as much of the buffer as each container format
// requires: the JPEG segment chain up to the first SOF marker, the PNG
// IHDR chunk (plus a tRNS scan for palette images), the WebP RIFF
// header chunk, and the fixed-offset headers of GIF and BMP. For large
// images this is orders of magnitude cheaper than decoding pixels.
//
// # Supported Formats
//
// JPEG, PNG, WebP (VP8, VP8L and VP8X), GIF and BMP. Detection is
// content-based (magic bytes), never extension-based.
//
// # Alpha Reporting
//
// HasAlpha reflects what the container header declares:
//   - PNG: color types 4 and 6, or a palette with a tRNS chunk
//   - WebP: the VP8L alpha bit or the VP8X ALPHA flag
//   - BMP: 32 bits per pixel
//   - JPEG and GIF: always false
package imagemeta
