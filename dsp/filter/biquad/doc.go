// Package biquad provides biquad (second-order IIR) filter runtime
// primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. This package provides the
// processing runtime only; coefficient design (lowpass, shelving, peaking,
// etc.) lives in dsp/filter/design, and user-facing filter effects live in
// dsp/filter and dsp/filter/eq.
package biquad
