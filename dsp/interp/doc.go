// Package interp provides interpolation primitives used by fractional delay
// reads.
//
// Two kernels are available, from cheapest to highest quality:
//   - Lerp: 2-point linear interpolation, never overshoots its neighbors.
//   - Hermite4: 4-point cubic Hermite, smoother for slowly varying signals.
package interp
