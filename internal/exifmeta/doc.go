// Package exifmeta writes and strips EXIF metadata in JPEG and WebP
// containers.
//
// Tag-level serialization is delegated to go-exif; this package owns
// the container work. JPEG goes through segment-list surgery (the APP1
// Exif segment is replaced or dropped, every other segment passes
// through untouched). WebP goes through RIFF chunk surgery: the EXIF
// chunk is inserted, replaced or removed and the VP8X feature flags
// are kept consistent, synthesizing a VP8X chunk when a simple-format
// file gains metadata.
//
// Writes merge: fields present in the request are set or updated,
// fields absent from the request keep whatever value the file already
// carries. Strip removes every EXIF-bearing segment or chunk while
// leaving the compressed pixel payload bit-identical.
package exifmeta
