// Package imageturbo is an adaptive image-transformation pipeline.
//
// Given a raw encoded image buffer and a small set of declarative
// options, it decides how to decode (full resolution vs. reduced
// "shrink-on-load" decode), how to resize or crop, what format to
// encode to, and how to derive compact visual fingerprints
// (perceptual hash, blurhash, thumbhash), minimizing decode and
// resize cost for large source images.
//
// The package exposes every operation in two forms:
//
//   - Synchronous package functions (Thumbnail, SmartCrop, ImageHash,
//     ...) that run on the caller's goroutine.
//   - An Async type whose methods run the identical functions on a
//     bounded worker pool, blocking the caller until completion.
//
// All operations are stateless and request-scoped: each call owns its
// input buffer and produces an independently owned output, so
// concurrent calls never share data. The worker pool is the only
// shared resource in the asynchronous mode.
//
// Input formats are detected from magic bytes; JPEG, PNG, WebP, GIF
// and BMP are decodable. Output encoders cover JPEG, PNG and WebP.
package imageturbo
