// Package filter provides the user-facing second-order filter effect:
// one biquad section with a selectable response kind, cutoff, resonance,
// and wet/dry mix.
package filter

import (
	"fmt"

	"github.com/marksweiss/rosco/dsp/core"
	"github.com/marksweiss/rosco/dsp/filter/biquad"
	"github.com/marksweiss/rosco/dsp/filter/design"
)

// Kind selects the filter response.
type Kind int

const (
	LowPass Kind = iota
	HighPass
	BandPass
	Notch
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case LowPass:
		return "lowpass"
	case HighPass:
		return "highpass"
	case BandPass:
		return "bandpass"
	case Notch:
		return "notch"
	default:
		return "unknown"
	}
}

const (
	defaultCutoffHz  = 1000.0
	defaultResonance = 0.0
	defaultMix       = 1.0

	minCutoffHz = 20.0
)

// Option mutates filter construction parameters.
type Option func(*filterConfig) error

type filterConfig struct {
	cutoffHz  float64
	resonance float64
	mix       float64
}

func defaultFilterConfig() filterConfig {
	return filterConfig{
		cutoffHz:  defaultCutoffHz,
		resonance: defaultResonance,
		mix:       defaultMix,
	}
}

// WithCutoff sets the cutoff (or center) frequency in Hz. Values outside
// [20 Hz, 0.99*Nyquist] are clamped when coefficients are derived.
func WithCutoff(cutoffHz float64) Option {
	return func(cfg *filterConfig) error {
		if cutoffHz <= 0 || !core.IsFinite(cutoffHz) {
			return fmt.Errorf("%w: filter cutoff must be > 0 and finite: %f", core.ErrOutOfRange, cutoffHz)
		}
		cfg.cutoffHz = cutoffHz
		return nil
	}
}

// WithResonance sets the resonance in [0, 1]. Values outside the interval
// are clamped; resonance is mapped internally into a stable Q range.
func WithResonance(resonance float64) Option {
	return func(cfg *filterConfig) error {
		if !core.IsFinite(resonance) {
			return fmt.Errorf("%w: filter resonance must be finite: %f", core.ErrOutOfRange, resonance)
		}
		cfg.resonance = core.Clamp(resonance, 0, 1)
		return nil
	}
}

// WithMix sets the wet amount in [0, 1].
func WithMix(mix float64) Option {
	return func(cfg *filterConfig) error {
		if mix < 0 || mix > 1 || !core.IsFinite(mix) {
			return fmt.Errorf("%w: filter mix must be in [0, 1]: %f", core.ErrOutOfRange, mix)
		}
		cfg.mix = mix
		return nil
	}
}

// Filter applies one second-order IIR section with wet/dry mix.
// Coefficients are re-derived on every parameter change, never during
// ProcessSample.
type Filter struct {
	kind       Kind
	sampleRate float64
	cutoffHz   float64
	resonance  float64
	mix        float64
	mixDry     float64

	section biquad.Section
}

// New creates a filter of the given kind for the given sample rate.
func New(kind Kind, sampleRate float64, opts ...Option) (*Filter, error) {
	if kind < LowPass || kind > Notch {
		return nil, fmt.Errorf("%w: unknown filter kind: %d", core.ErrOutOfRange, int(kind))
	}

	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: filter sample rate must be > 0 and finite: %f", core.ErrOutOfRange, sampleRate)
	}

	cfg := defaultFilterConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f := &Filter{
		kind:       kind,
		sampleRate: sampleRate,
		cutoffHz:   cfg.cutoffHz,
		resonance:  cfg.resonance,
		mix:        cfg.mix,
		mixDry:     1 - cfg.mix,
	}
	f.updateCoefficients()

	return f, nil
}

// ProcessSample filters one sample and returns mix*wet + (1-mix)*dry.
func (f *Filter) ProcessSample(x float64) float64 {
	y := f.section.ProcessSample(x)

	return f.mix*y + f.mixDry*x
}

// ProcessInPlace filters buf in place.
func (f *Filter) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = f.ProcessSample(buf[i])
	}
}

// SetCutoff updates the cutoff frequency and re-derives coefficients.
func (f *Filter) SetCutoff(cutoffHz float64) error {
	if cutoffHz <= 0 || !core.IsFinite(cutoffHz) {
		return fmt.Errorf("%w: filter cutoff must be > 0 and finite: %f", core.ErrOutOfRange, cutoffHz)
	}

	f.cutoffHz = cutoffHz
	f.updateCoefficients()

	return nil
}

// SetResonance updates the resonance (clamped to [0, 1]) and re-derives
// coefficients.
func (f *Filter) SetResonance(resonance float64) error {
	if !core.IsFinite(resonance) {
		return fmt.Errorf("%w: filter resonance must be finite: %f", core.ErrOutOfRange, resonance)
	}

	f.resonance = core.Clamp(resonance, 0, 1)
	f.updateCoefficients()

	return nil
}

// SetMix updates the wet amount in [0, 1].
func (f *Filter) SetMix(mix float64) error {
	if mix < 0 || mix > 1 || !core.IsFinite(mix) {
		return fmt.Errorf("%w: filter mix must be in [0, 1]: %f", core.ErrOutOfRange, mix)
	}

	f.mix = mix
	f.mixDry = 1 - mix

	return nil
}

// Reset clears filter history. Coefficients are untouched.
func (f *Filter) Reset() {
	f.section.Reset()
}

// Kind returns the filter response kind.
func (f *Filter) Kind() Kind { return f.kind }

// SampleRate returns the sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// Cutoff returns the cutoff frequency in Hz as supplied by the caller.
func (f *Filter) Cutoff() float64 { return f.cutoffHz }

// Resonance returns the resonance in [0, 1].
func (f *Filter) Resonance() float64 { return f.resonance }

// Mix returns the wet amount in [0, 1].
func (f *Filter) Mix() float64 { return f.mix }

// Coefficients returns the active biquad coefficients.
func (f *Filter) Coefficients() biquad.Coefficients {
	return f.section.Coefficients
}

func (f *Filter) updateCoefficients() {
	cutoff := core.Clamp(f.cutoffHz, minCutoffHz, f.sampleRate/2*0.99)
	q := design.ResonanceToQ(f.resonance)

	var c biquad.Coefficients

	switch f.kind {
	case HighPass:
		c = design.Highpass(cutoff, q, f.sampleRate)
	case BandPass:
		c = design.Bandpass(cutoff, q, f.sampleRate)
	case Notch:
		c = design.Notch(cutoff, q, f.sampleRate)
	default:
		c = design.Lowpass(cutoff, q, f.sampleRate)
	}

	f.section.Coefficients = c
}
