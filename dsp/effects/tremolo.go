package effects

import (
	"fmt"

	"github.com/marksweiss/rosco/dsp/core"
	"github.com/marksweiss/rosco/dsp/lfo"
)

const (
	defaultTremoloModFreq = 5.0
	defaultTremoloDepth   = 0.5
)

// TremoloOption mutates tremolo construction parameters.
type TremoloOption func(*tremoloConfig) error

type tremoloConfig struct {
	modFreqHz float64
	modDepth  float64
	waveform  lfo.Waveform
}

func defaultTremoloConfig() tremoloConfig {
	return tremoloConfig{
		modFreqHz: defaultTremoloModFreq,
		modDepth:  defaultTremoloDepth,
		waveform:  lfo.Sine,
	}
}

// WithTremoloFrequency sets the modulation rate in Hz.
func WithTremoloFrequency(frequencyHz float64) TremoloOption {
	return func(cfg *tremoloConfig) error {
		if frequencyHz < 0 || !core.IsFinite(frequencyHz) {
			return fmt.Errorf("%w: tremolo frequency must be >= 0 and finite: %f",
				core.ErrOutOfRange, frequencyHz)
		}
		cfg.modFreqHz = frequencyHz
		return nil
	}
}

// WithTremoloDepth sets the modulation depth in [0, 1]: 0 passes the input
// unchanged, 1 swings the gain over the full [0, 1] range.
func WithTremoloDepth(depth float64) TremoloOption {
	return func(cfg *tremoloConfig) error {
		if depth < 0 || depth > 1 || !core.IsFinite(depth) {
			return fmt.Errorf("%w: tremolo depth must be in [0, 1]: %f", core.ErrOutOfRange, depth)
		}
		cfg.modDepth = depth
		return nil
	}
}

// WithTremoloWaveform selects the modulation waveform.
func WithTremoloWaveform(waveform lfo.Waveform) TremoloOption {
	return func(cfg *tremoloConfig) error {
		cfg.waveform = waveform
		return nil
	}
}

// Tremolo modulates the amplitude of the dry signal with an LFO. It keeps no
// buffer; the LFO phase is its only state.
type Tremolo struct {
	sampleRate float64
	modDepth   float64

	osc *lfo.LFO
}

// NewTremolo creates a tremolo with the given sample rate.
func NewTremolo(sampleRate float64, opts ...TremoloOption) (*Tremolo, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: tremolo sample rate must be > 0 and finite: %f",
			core.ErrOutOfRange, sampleRate)
	}

	cfg := defaultTremoloConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	// Unipolar oscillator in [0, 1] so the gain stays in [1-depth, 1].
	osc, err := lfo.New(sampleRate,
		lfo.WithFrequency(cfg.modFreqHz),
		lfo.WithWidth(0.5),
		lfo.WithBias(0.5),
		lfo.WithWaveform(cfg.waveform))
	if err != nil {
		return nil, err
	}

	return &Tremolo{
		sampleRate: sampleRate,
		modDepth:   cfg.modDepth,
		osc:        osc,
	}, nil
}

// ProcessSample scales one sample by the instantaneous LFO gain. The LFO
// steps exactly once per call.
func (t *Tremolo) ProcessSample(x float64) float64 {
	gain := 1 - t.modDepth*(1-t.osc.Tick(1))

	return x * gain
}

// ProcessInPlace applies the tremolo to buf in place.
func (t *Tremolo) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = t.ProcessSample(buf[i])
	}
}

// SetDepth updates the modulation depth in [0, 1] without disturbing the
// LFO phase.
func (t *Tremolo) SetDepth(depth float64) error {
	if depth < 0 || depth > 1 || !core.IsFinite(depth) {
		return fmt.Errorf("%w: tremolo depth must be in [0, 1]: %f", core.ErrOutOfRange, depth)
	}

	t.modDepth = depth

	return nil
}

// SetFrequency updates the modulation rate in Hz, preserving phase.
func (t *Tremolo) SetFrequency(frequencyHz float64) error {
	return t.osc.SetFrequency(frequencyHz)
}

// Reset rewinds the LFO to its start phase.
func (t *Tremolo) Reset() {
	t.osc.Reset()
}

// SampleRate returns the sample rate in Hz.
func (t *Tremolo) SampleRate() float64 { return t.sampleRate }

// Depth returns the modulation depth in [0, 1].
func (t *Tremolo) Depth() float64 { return t.modDepth }

// ModFrequency returns the modulation rate in Hz.
func (t *Tremolo) ModFrequency() float64 { return t.osc.Frequency() }
