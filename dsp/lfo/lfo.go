package lfo

import (
	"fmt"
	"math"

	"github.com/marksweiss/rosco/dsp/core"
)

// Waveform identifies the periodic shape an LFO evaluates. The set is closed:
// each variant has a closed-form evaluation inside Tick/Process, so the hot
// path stays branch-predictable and free of interface dispatch.
type Waveform int

const (
	Sine Waveform = iota
	Triangle
	Square
	Saw
)

// String returns the waveform name for diagnostics.
func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Triangle:
		return "triangle"
	case Square:
		return "square"
	case Saw:
		return "saw"
	default:
		return "unknown"
	}
}

const (
	defaultFrequencyHz = 1.0
	defaultWidth       = 1.0
	defaultBias        = 0.0
)

// Option mutates LFO construction parameters.
type Option func(*lfoConfig) error

type lfoConfig struct {
	frequencyHz float64
	width       float64
	bias        float64
	waveform    Waveform
	phase       float64
}

func defaultConfig() lfoConfig {
	return lfoConfig{
		frequencyHz: defaultFrequencyHz,
		width:       defaultWidth,
		bias:        defaultBias,
		waveform:    Sine,
	}
}

// WithFrequency sets the oscillation frequency in Hz.
func WithFrequency(frequencyHz float64) Option {
	return func(cfg *lfoConfig) error {
		if frequencyHz < 0 || !core.IsFinite(frequencyHz) {
			return fmt.Errorf("%w: lfo frequency must be >= 0 and finite: %f", core.ErrOutOfRange, frequencyHz)
		}
		cfg.frequencyHz = frequencyHz
		return nil
	}
}

// WithWidth sets the modulation depth: output swings bias +- width.
func WithWidth(width float64) Option {
	return func(cfg *lfoConfig) error {
		if !core.IsFinite(width) {
			return fmt.Errorf("%w: lfo width must be finite: %f", core.ErrOutOfRange, width)
		}
		cfg.width = width
		return nil
	}
}

// WithBias sets the DC offset added to the scaled waveform.
func WithBias(bias float64) Option {
	return func(cfg *lfoConfig) error {
		if !core.IsFinite(bias) {
			return fmt.Errorf("%w: lfo bias must be finite: %f", core.ErrOutOfRange, bias)
		}
		cfg.bias = bias
		return nil
	}
}

// WithWaveform selects the waveform variant.
func WithWaveform(waveform Waveform) Option {
	return func(cfg *lfoConfig) error {
		if waveform < Sine || waveform > Saw {
			return fmt.Errorf("%w: unknown lfo waveform: %d", core.ErrOutOfRange, int(waveform))
		}
		cfg.waveform = waveform
		return nil
	}
}

// WithPhase sets the starting phase in cycles; it is wrapped into [0, 1).
// Multi-voice effects use this to offset otherwise identical LFOs.
func WithPhase(phase float64) Option {
	return func(cfg *lfoConfig) error {
		if !core.IsFinite(phase) {
			return fmt.Errorf("%w: lfo phase must be finite: %f", core.ErrOutOfRange, phase)
		}
		cfg.phase = phase - math.Floor(phase)
		return nil
	}
}

// LFO is a low-frequency oscillator driven by a phase accumulator in [0, 1).
// Tick advances the stored phase; Process evaluates the value at an absolute
// tick index without mutating state.
type LFO struct {
	sampleRate float64
	frequency  float64
	width      float64
	bias       float64
	waveform   Waveform

	startPhase float64
	phase      float64
	phaseIncr  float64
}

// New creates an LFO for the given sample rate.
func New(sampleRate float64, opts ...Option) (*LFO, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: lfo sample rate must be > 0 and finite: %f", core.ErrOutOfRange, sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	l := &LFO{
		sampleRate: sampleRate,
		frequency:  cfg.frequencyHz,
		width:      cfg.width,
		bias:       cfg.bias,
		waveform:   cfg.waveform,
		startPhase: cfg.phase,
		phase:      cfg.phase,
	}
	l.phaseIncr = l.frequency / l.sampleRate

	return l, nil
}

// Tick advances the phase by steps whole ticks, wraps it into [0, 1), and
// returns the new instantaneous value.
func (l *LFO) Tick(steps int) float64 {
	if steps != 0 {
		l.phase += float64(steps) * l.phaseIncr
		l.phase -= math.Floor(l.phase)
	}

	return l.bias + l.width*evaluate(l.waveform, l.phase)
}

// Process returns the value at absolute tick index n, derived from the
// starting phase. Stored phase is not touched, so interleaved Tick and
// Process calls do not disturb each other.
func (l *LFO) Process(n uint64) float64 {
	phase := l.startPhase + float64(n)*l.phaseIncr
	phase -= math.Floor(phase)

	return l.bias + l.width*evaluate(l.waveform, phase)
}

// SetFrequency updates the oscillation frequency in Hz.
func (l *LFO) SetFrequency(frequencyHz float64) error {
	if frequencyHz < 0 || !core.IsFinite(frequencyHz) {
		return fmt.Errorf("%w: lfo frequency must be >= 0 and finite: %f", core.ErrOutOfRange, frequencyHz)
	}

	l.frequency = frequencyHz
	l.phaseIncr = frequencyHz / l.sampleRate

	return nil
}

// SetWidth updates the modulation depth.
func (l *LFO) SetWidth(width float64) error {
	if !core.IsFinite(width) {
		return fmt.Errorf("%w: lfo width must be finite: %f", core.ErrOutOfRange, width)
	}

	l.width = width

	return nil
}

// SetBias updates the DC offset.
func (l *LFO) SetBias(bias float64) error {
	if !core.IsFinite(bias) {
		return fmt.Errorf("%w: lfo bias must be finite: %f", core.ErrOutOfRange, bias)
	}

	l.bias = bias

	return nil
}

// Reset rewinds the phase to the starting phase.
func (l *LFO) Reset() {
	l.phase = l.startPhase
}

// SampleRate returns the sample rate in Hz.
func (l *LFO) SampleRate() float64 { return l.sampleRate }

// Frequency returns the oscillation frequency in Hz.
func (l *LFO) Frequency() float64 { return l.frequency }

// Width returns the modulation depth.
func (l *LFO) Width() float64 { return l.width }

// Bias returns the DC offset.
func (l *LFO) Bias() float64 { return l.bias }

// Shape returns the waveform variant.
func (l *LFO) Shape() Waveform { return l.waveform }

// Phase returns the current phase in [0, 1).
func (l *LFO) Phase() float64 { return l.phase }

func evaluate(w Waveform, phase float64) float64 {
	switch w {
	case Triangle:
		// Rises from 0 like sine: peak at phase 0.25, trough at 0.75.
		switch {
		case phase < 0.25:
			return 4 * phase
		case phase < 0.75:
			return 2 - 4*phase
		default:
			return 4*phase - 4
		}
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Saw:
		return 2*phase - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}
