// Package transform computes resize geometry and applies resize, fit
// and crop operations.
//
// # Geometry
//
// Plan decides whether decoded dimensions require a resize pass to
// reach a target. In exact mode any mismatch triggers a resize. In
// fast mode a tolerance window applies: when both decoded/target
// ratios fall within [0.85, 1.15] the resize is skipped entirely, and
// when it is not skipped the filter is forced to nearest-neighbor.
// Fast mode trades dimensional exactness and resample quality for
// speed.
//
// # Fit Modes
//
//   - FitFill stretches to the exact target, ignoring aspect ratio.
//   - FitCover scales preserving aspect ratio and center-crops the
//     overflow, producing the exact target.
//   - FitContain scales preserving aspect ratio and pads to the exact
//     target with the background color.
//   - FitInside bounds the image within the target box preserving
//     aspect ratio; the result may be smaller than the target.
package transform
