// Package response captures impulse responses from sample processors and
// derives frequency-domain magnitude measurements from them.
package response

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/marksweiss/rosco/dsp/core"
)

// SampleProcessor is the per-sample hot path shared by every effect and
// filter in this module.
type SampleProcessor interface {
	ProcessSample(x float64) float64
}

// ImpulseResponse feeds a unit impulse through p and records length output
// samples. The processor should be freshly constructed or reset first.
func ImpulseResponse(p SampleProcessor, length int) ([]float64, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: processor", core.ErrMissingRequiredField)
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: response length must be > 0: %d", core.ErrOutOfRange, length)
	}

	out := make([]float64, length)
	out[0] = p.ProcessSample(1)
	for i := 1; i < length; i++ {
		out[i] = p.ProcessSample(0)
	}

	return out, nil
}

// MagnitudeSpectrum returns |X[k]| for the non-negative frequency bins
// [0..fftSize/2] of x, zero-padded to fftSize.
func MagnitudeSpectrum(x []float64, fftSize int) ([]float64, error) {
	re, im, err := spectrumParts(x, fftSize)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(re))
	vecmath.Magnitude(out, re, im)

	return out, nil
}

// PowerSpectrum returns |X[k]|^2 for the non-negative frequency bins
// [0..fftSize/2] of x, zero-padded to fftSize.
func PowerSpectrum(x []float64, fftSize int) ([]float64, error) {
	re, im, err := spectrumParts(x, fftSize)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(re))
	vecmath.Power(out, re, im)

	return out, nil
}

// MagnitudeAt measures a processor's magnitude response at freqHz by
// capturing an fftSize-point impulse response and reading the nearest FFT
// bin.
func MagnitudeAt(p SampleProcessor, freqHz, sampleRate float64, fftSize int) (float64, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return 0, fmt.Errorf("%w: sample rate must be > 0 and finite: %f", core.ErrOutOfRange, sampleRate)
	}
	if freqHz < 0 || freqHz > sampleRate/2 {
		return 0, fmt.Errorf("%w: frequency %f outside [0, %f]", core.ErrOutOfRange, freqHz, sampleRate/2)
	}

	ir, err := ImpulseResponse(p, fftSize)
	if err != nil {
		return 0, err
	}

	mag, err := MagnitudeSpectrum(ir, fftSize)
	if err != nil {
		return 0, err
	}

	bin := int(math.Round(freqHz / sampleRate * float64(fftSize)))
	bin = min(bin, len(mag)-1)

	return mag[bin], nil
}

// MagnitudeDBAt is MagnitudeAt expressed in decibels.
func MagnitudeDBAt(p SampleProcessor, freqHz, sampleRate float64, fftSize int) (float64, error) {
	mag, err := MagnitudeAt(p, freqHz, sampleRate, fftSize)
	if err != nil {
		return 0, err
	}

	return core.LinearToDB(mag), nil
}

// BinFrequency returns the center frequency in Hz of FFT bin k.
func BinFrequency(k, fftSize int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(fftSize)
}

func spectrumParts(x []float64, fftSize int) (re, im []float64, err error) {
	if len(x) == 0 {
		return nil, nil, fmt.Errorf("%w: empty input", core.ErrOutOfRange)
	}
	if fftSize < len(x) {
		return nil, nil, fmt.Errorf("%w: fft size %d below input length %d",
			core.ErrInsufficientCapacity, fftSize, len(x))
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, nil, err
	}

	in := make([]complex128, fftSize)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, nil, err
	}

	bins := fftSize/2 + 1
	re = make([]float64, bins)
	im = make([]float64, bins)
	for k := 0; k < bins; k++ {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	return re, im, nil
}
