package effects

import (
	"fmt"

	"github.com/marksweiss/rosco/dsp/core"
	"github.com/marksweiss/rosco/dsp/delay"
	"github.com/marksweiss/rosco/dsp/interp"
	"github.com/marksweiss/rosco/dsp/lfo"
)

const defaultVibratoModFreq = 5.0

// VibratoOption mutates vibrato construction parameters.
type VibratoOption func(*vibratoConfig) error

type vibratoConfig struct {
	avgDelaySeconds float64
	modWidthSeconds float64
	modFreqHz       float64
	mode            interp.Mode
}

func defaultVibratoConfig() vibratoConfig {
	return vibratoConfig{
		avgDelaySeconds: -1, // required
		modWidthSeconds: -1, // required
		modFreqHz:       defaultVibratoModFreq,
		mode:            interp.Linear,
	}
}

// WithVibratoDelay sets the average delay time in seconds. Required.
func WithVibratoDelay(seconds float64) VibratoOption {
	return func(cfg *vibratoConfig) error {
		if seconds <= 0 || !core.IsFinite(seconds) {
			return fmt.Errorf("%w: vibrato delay must be > 0 and finite: %f", core.ErrOutOfRange, seconds)
		}
		cfg.avgDelaySeconds = seconds
		return nil
	}
}

// WithVibratoWidth sets the modulation width in seconds, the maximum
// deviation from the average delay. Required.
func WithVibratoWidth(seconds float64) VibratoOption {
	return func(cfg *vibratoConfig) error {
		if seconds < 0 || !core.IsFinite(seconds) {
			return fmt.Errorf("%w: vibrato width must be >= 0 and finite: %f", core.ErrOutOfRange, seconds)
		}
		cfg.modWidthSeconds = seconds
		return nil
	}
}

// WithVibratoFrequency sets the modulation rate in Hz.
func WithVibratoFrequency(frequencyHz float64) VibratoOption {
	return func(cfg *vibratoConfig) error {
		if frequencyHz < 0 || !core.IsFinite(frequencyHz) {
			return fmt.Errorf("%w: vibrato frequency must be >= 0 and finite: %f",
				core.ErrOutOfRange, frequencyHz)
		}
		cfg.modFreqHz = frequencyHz
		return nil
	}
}

// WithVibratoInterpolation selects the fractional read interpolation mode.
func WithVibratoInterpolation(mode interp.Mode) VibratoOption {
	return func(cfg *vibratoConfig) error {
		cfg.mode = mode
		return nil
	}
}

// Vibrato modulates a single fractional delay tap with a sine LFO, producing
// periodic pitch variation. There is no dry path: the output is entirely the
// delayed, modulated signal.
type Vibrato struct {
	sampleRate      float64
	avgDelaySamples int
	modWidthSamples int

	line *delay.Line
	osc  *lfo.LFO
}

// NewVibrato creates a vibrato. Average delay and modulation width are
// required; the width must stay below the average delay so the instantaneous
// read offset never reaches the write cursor.
func NewVibrato(sampleRate float64, opts ...VibratoOption) (*Vibrato, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: vibrato sample rate must be > 0 and finite: %f",
			core.ErrOutOfRange, sampleRate)
	}

	cfg := defaultVibratoConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.avgDelaySeconds <= 0 {
		return nil, fmt.Errorf("%w: vibrato delay", core.ErrMissingRequiredField)
	}
	if cfg.modWidthSeconds < 0 {
		return nil, fmt.Errorf("%w: vibrato width", core.ErrMissingRequiredField)
	}

	avgDelaySamples := core.SecondsToSamples(cfg.avgDelaySeconds, sampleRate)
	modWidthSamples := core.SecondsToSamples(cfg.modWidthSeconds, sampleRate)
	if avgDelaySamples < 2 {
		avgDelaySamples = 2
	}
	if modWidthSamples >= avgDelaySamples {
		return nil, fmt.Errorf("%w: vibrato width of %d samples must be below the delay of %d samples",
			core.ErrOutOfRange, modWidthSamples, avgDelaySamples)
	}

	line, err := delay.New(avgDelaySamples+modWidthSamples+2, delay.WithMode(cfg.mode))
	if err != nil {
		return nil, err
	}

	osc, err := lfo.New(sampleRate,
		lfo.WithFrequency(cfg.modFreqHz),
		lfo.WithWidth(float64(modWidthSamples)))
	if err != nil {
		return nil, err
	}

	return &Vibrato{
		sampleRate:      sampleRate,
		avgDelaySamples: avgDelaySamples,
		modWidthSamples: modWidthSamples,
		line:            line,
		osc:             osc,
	}, nil
}

// ProcessSample processes one sample. The LFO steps exactly once per call;
// the modulated tap is read before the new input is written.
func (v *Vibrato) ProcessSample(x float64) float64 {
	offset := float64(v.avgDelaySamples) + v.osc.Tick(1)
	y := v.line.ReadFractional(offset)
	v.line.Write(x)

	return y
}

// ProcessInPlace applies the vibrato to buf in place.
func (v *Vibrato) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = v.ProcessSample(buf[i])
	}
}

// SetFrequency updates the modulation rate in Hz, preserving phase.
func (v *Vibrato) SetFrequency(frequencyHz float64) error {
	return v.osc.SetFrequency(frequencyHz)
}

// Reset clears the delay buffer and rewinds the LFO to its start phase.
func (v *Vibrato) Reset() {
	v.line.Reset()
	v.osc.Reset()
}

// SampleRate returns the sample rate in Hz.
func (v *Vibrato) SampleRate() float64 { return v.sampleRate }

// AvgDelaySamples returns the average delay in samples.
func (v *Vibrato) AvgDelaySamples() int { return v.avgDelaySamples }

// ModWidthSamples returns the modulation width in samples.
func (v *Vibrato) ModWidthSamples() int { return v.modWidthSamples }

// ModFrequency returns the modulation rate in Hz.
func (v *Vibrato) ModFrequency() float64 { return v.osc.Frequency() }
