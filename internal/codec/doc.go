// Package codec selects decode strategies and dispatches format-specific
// decoding and encoding.
//
// # Decode Strategy
//
// PlanDecode turns a caller's requested target dimensions into a decode
// plan. When only one dimension is requested the other is derived from
// the source aspect ratio. A plan with a target enables the reduced
// decode path ("shrink-on-load"): JPEG is decoded directly at a reduced
// resolution through libjpeg's DCT scaling, which steps in eighths and
// therefore returns an image at least as large as the request. Formats
// without decoder-level scaling are decoded fully and downsampled so
// that callers observe the same contract: reduced decodes cover the
// requested target, never undershoot it.
//
// Callers must not assume the decoded dimensions match the plan target
// exactly.
//
// # Encoding
//
// JPEG encoding goes through libjpeg, PNG through the standard library
// encoder and WebP through the libwebp binding. GIF and BMP are decode
// only.
package codec
