// Package lfo provides a low-frequency oscillator for control-rate
// modulation of effect parameters. The waveform set is closed (sine,
// triangle, square, saw); width and bias scale and offset the raw waveform,
// so unipolar and bipolar modulators come from the same oscillator. Tick
// advances stored phase one step per processed sample; Process evaluates at
// an absolute sample index without touching stored phase.
package lfo
