// Package signal generates deterministic measurement signals used to probe
// audio processors: sines, seeded noise, impulses, and envelope shaping.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"
	"github.com/marksweiss/rosco/dsp/core"
)

// Sine returns length samples of a sine wave at freqHz.
func Sine(freqHz, sampleRate, amplitude float64, length int) ([]float64, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: sample rate must be > 0 and finite: %f", core.ErrOutOfRange, sampleRate)
	}
	if freqHz < 0 || !core.IsFinite(freqHz) {
		return nil, fmt.Errorf("%w: frequency must be >= 0 and finite: %f", core.ErrOutOfRange, freqHz)
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: length must be >= 0: %d", core.ErrOutOfRange, length)
	}

	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out, nil
}

// WhiteNoise returns length samples of uniform white noise in
// [-amplitude, amplitude], generated from the given seed.
func WhiteNoise(seed int64, amplitude float64, length int) ([]float64, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: length must be >= 0: %d", core.ErrOutOfRange, length)
	}

	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out, nil
}

// Impulse returns length samples that are zero except for a unit sample at
// pos.
func Impulse(length, pos int) ([]float64, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: length must be > 0: %d", core.ErrOutOfRange, length)
	}
	if pos < 0 || pos >= length {
		return nil, fmt.Errorf("%w: impulse position %d outside [0, %d)", core.ErrOutOfRange, pos, length)
	}

	out := make([]float64, length)
	out[pos] = 1

	return out, nil
}

// Normalize scales buf in place so its peak magnitude equals target. A
// silent buffer is left untouched.
func Normalize(buf []float64, target float64) {
	peak := 0.0
	for _, v := range buf {
		peak = max(peak, math.Abs(v))
	}
	if peak == 0 {
		return
	}

	vecmath.ScaleBlock(buf, buf, target/peak)
}

// ApplyEnvelope multiplies buf by env element-wise in place.
func ApplyEnvelope(buf, env []float64) error {
	if len(buf) != len(env) {
		return fmt.Errorf("%w: %d samples vs %d envelope points", core.ErrMismatchedLengths, len(buf), len(env))
	}

	vecmath.MulBlockInPlace(buf, env)

	return nil
}

// HannEnvelope returns a length-point Hann window, zero at both ends.
func HannEnvelope(length int) []float64 {
	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out
	}
	for i := range out {
		out[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(length-1)))
	}

	return out
}
