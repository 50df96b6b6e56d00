// Package core provides the shared primitives used across the DSP packages:
// the sentinel validation errors (out of range, mismatched lengths, missing
// required field, insufficient capacity) and small numeric helpers such as
// clamping, seconds-to-samples conversion, denormal flushing, and dB
// conversions.
package core
