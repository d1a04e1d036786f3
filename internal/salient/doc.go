// Package salient finds the most visually interesting window of an
// image at a fixed target size.
//
// The search downsamples the image, builds a per-pixel interest map
// from Sobel edge magnitude (detail), HSV saturation and skin-tone
// likelihood, then slides candidate windows of the target aspect over
// the map. Each window's score sums pixel interest weighted toward the
// window center, so a window that centers detail beats one that clips
// it at an edge.
//
// Scores are comparable only between windows of the same search; they
// carry no fixed scale. Higher is better.
package salient
