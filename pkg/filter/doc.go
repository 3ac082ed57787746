// Package filter provides composable geometric filters that reduce point
// count and smooth jagged noise in traced paths while preserving curve shape.
//
// # Overview
//
// Paths coming out of a raster trace are dense and noisy: one point per
// foreground pixel, staircase artifacts on every diagonal, and occasional
// single-pixel jitter. This package provides a pipeline of interchangeable
// [Filter] implementations that reshape a path one step at a time:
//
//   - [Decimate] drops points closer than a tolerance to the last kept point
//   - [MovingAverage] replaces each point with a windowed mean
//   - [Chaikin] cuts corners by iterative edge subdivision
//   - [Simplify] removes points with the Douglas-Peucker algorithm
//   - [SavitzkyGolay] smooths with local least-squares polynomial fits
//   - [SplineResample] refits the path as natural cubic splines and resamples
//
// Filters compose through [Chain], which applies them in declaration order.
// Order matters: smoothing before simplification produces rounder output than
// the reverse, and presets exploit this by declaring different orders.
//
// # Degenerate Input
//
// No filter fails on degenerate geometry. Inputs below a filter's minimum
// viable length pass through unchanged, and numerical fit failures inside
// [SavitzkyGolay] and [SplineResample] fall back to the unfitted coordinates.
// Filters never mutate their input path.
//
// # Filter Specs
//
// [Parse] builds a Chain from a compact textual form used by flags and
// presets, for example:
//
//	chain, err := filter.Parse("decimate=2,smooth=5,chaikin=2,simplify=1.2")
//
// [Chain.String] renders the canonical form back, which also serves as the
// cache key component for refined artifacts.
package filter
