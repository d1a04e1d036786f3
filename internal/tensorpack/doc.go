// Package tensorpack converts decoded rasters into packed numeric
// arrays for ML preprocessing.
//
// Pixels are read as 8-bit RGB, normalized, laid out channel-first
// (CHW) or channel-last (HWC) and emitted little-endian in the target
// dtype. Alpha is dropped; three channels always come out.
//
// Normalization presets:
//
//	none      raw 0..255 values
//	unit      scaled to 0..1
//	centered  scaled to -1..1
//	imagenet  unit scaling followed by the per-channel ImageNet
//	          mean/std adjustment
//
// The uint8 dtype only pairs with the none preset; every other
// combination needs a floating dtype to represent the result.
package tensorpack
