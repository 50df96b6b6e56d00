package effects

import (
	"fmt"

	"github.com/marksweiss/rosco/dsp/core"
	"github.com/marksweiss/rosco/dsp/delay"
	"github.com/marksweiss/rosco/dsp/interp"
	"github.com/marksweiss/rosco/dsp/lfo"
)

const defaultChorusDryGain = 1.0

// ChorusOption mutates chorus construction parameters.
type ChorusOption func(*chorusConfig) error

type chorusConfig struct {
	delays    []float64
	modFreqs  []float64
	modWidths []float64
	gains     []float64
	dryGain   float64
	mode      interp.Mode
}

func defaultChorusConfig() chorusConfig {
	return chorusConfig{
		dryGain: defaultChorusDryGain,
		mode:    interp.Linear,
	}
}

// WithVoices sets the per-voice base delays (seconds), modulation rates
// (Hz), modulation widths (seconds), and wet gains. Required. All four
// slices must have equal length, one entry per voice.
func WithVoices(delaySeconds, modFreqsHz, modWidthSeconds, gains []float64) ChorusOption {
	return func(cfg *chorusConfig) error {
		n := len(delaySeconds)
		if n == 0 {
			return fmt.Errorf("%w: at least one chorus voice required", core.ErrOutOfRange)
		}
		if len(modFreqsHz) != n || len(modWidthSeconds) != n || len(gains) != n {
			return fmt.Errorf("%w: %d delays vs %d mod freqs vs %d mod widths vs %d gains",
				core.ErrMismatchedLengths, n, len(modFreqsHz), len(modWidthSeconds), len(gains))
		}
		for i := range delaySeconds {
			if delaySeconds[i] <= 0 || !core.IsFinite(delaySeconds[i]) {
				return fmt.Errorf("%w: voice %d delay must be > 0 and finite: %f",
					core.ErrOutOfRange, i, delaySeconds[i])
			}
			if modFreqsHz[i] < 0 || !core.IsFinite(modFreqsHz[i]) {
				return fmt.Errorf("%w: voice %d mod frequency must be >= 0 and finite: %f",
					core.ErrOutOfRange, i, modFreqsHz[i])
			}
			if modWidthSeconds[i] < 0 || !core.IsFinite(modWidthSeconds[i]) {
				return fmt.Errorf("%w: voice %d mod width must be >= 0 and finite: %f",
					core.ErrOutOfRange, i, modWidthSeconds[i])
			}
			if !core.IsFinite(gains[i]) {
				return fmt.Errorf("%w: voice %d gain must be finite: %f", core.ErrOutOfRange, i, gains[i])
			}
		}

		cfg.delays = append([]float64(nil), delaySeconds...)
		cfg.modFreqs = append([]float64(nil), modFreqsHz...)
		cfg.modWidths = append([]float64(nil), modWidthSeconds...)
		cfg.gains = append([]float64(nil), gains...)

		return nil
	}
}

// WithDryGain sets the dry signal gain mixed with the voices.
func WithDryGain(gain float64) ChorusOption {
	return func(cfg *chorusConfig) error {
		if gain < 0 || !core.IsFinite(gain) {
			return fmt.Errorf("%w: chorus dry gain must be >= 0 and finite: %f", core.ErrOutOfRange, gain)
		}
		cfg.dryGain = gain
		return nil
	}
}

// WithChorusInterpolation selects the fractional read interpolation mode.
func WithChorusInterpolation(mode interp.Mode) ChorusOption {
	return func(cfg *chorusConfig) error {
		cfg.mode = mode
		return nil
	}
}

// Chorus mixes the dry signal with several LFO-modulated fractional delay
// taps. All voices read from one shared delay buffer; voice LFOs start at
// evenly spread phases so the modulation decorrelates across voices.
type Chorus struct {
	sampleRate  float64
	dryGain     float64
	voiceDelays []int
	voiceWidths []int
	voiceGains  []float64

	line *delay.Line
	oscs []*lfo.LFO
}

// NewChorus creates a chorus. The voice set is required; each voice needs
// base delay > modulation width so its read offset never reaches the write
// cursor.
func NewChorus(sampleRate float64, opts ...ChorusOption) (*Chorus, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: chorus sample rate must be > 0 and finite: %f",
			core.ErrOutOfRange, sampleRate)
	}

	cfg := defaultChorusConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.delays == nil {
		return nil, fmt.Errorf("%w: chorus voices", core.ErrMissingRequiredField)
	}

	numVoices := len(cfg.delays)
	voiceDelays := make([]int, numVoices)
	voiceWidths := make([]int, numVoices)
	maxReach := 0

	for i := range cfg.delays {
		voiceDelays[i] = max(core.SecondsToSamples(cfg.delays[i], sampleRate), 2)
		voiceWidths[i] = core.SecondsToSamples(cfg.modWidths[i], sampleRate)
		if voiceWidths[i] >= voiceDelays[i] {
			return nil, fmt.Errorf("%w: voice %d mod width of %d samples must be below its delay of %d samples",
				core.ErrOutOfRange, i, voiceWidths[i], voiceDelays[i])
		}
		maxReach = max(maxReach, voiceDelays[i]+voiceWidths[i])
	}

	line, err := delay.New(maxReach+2, delay.WithMode(cfg.mode))
	if err != nil {
		return nil, err
	}

	oscs := make([]*lfo.LFO, numVoices)
	for i := range oscs {
		oscs[i], err = lfo.New(sampleRate,
			lfo.WithFrequency(cfg.modFreqs[i]),
			lfo.WithWidth(float64(voiceWidths[i])),
			lfo.WithPhase(float64(i)/float64(numVoices)))
		if err != nil {
			return nil, err
		}
	}

	return &Chorus{
		sampleRate:  sampleRate,
		dryGain:     cfg.dryGain,
		voiceDelays: voiceDelays,
		voiceWidths: voiceWidths,
		voiceGains:  append([]float64(nil), cfg.gains...),
		line:        line,
		oscs:        oscs,
	}, nil
}

// ProcessSample processes one sample. Every voice reads its modulated tap
// before the single shared write, so all voices see a consistent history.
func (c *Chorus) ProcessSample(x float64) float64 {
	out := c.dryGain * x
	for i, osc := range c.oscs {
		offset := float64(c.voiceDelays[i]) + osc.Tick(1)
		out += c.voiceGains[i] * c.line.ReadFractional(offset)
	}
	c.line.Write(x)

	return out
}

// ProcessInPlace applies the chorus to buf in place.
func (c *Chorus) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = c.ProcessSample(buf[i])
	}
}

// SetDryGain updates the dry signal gain.
func (c *Chorus) SetDryGain(gain float64) error {
	if gain < 0 || !core.IsFinite(gain) {
		return fmt.Errorf("%w: chorus dry gain must be >= 0 and finite: %f", core.ErrOutOfRange, gain)
	}

	c.dryGain = gain

	return nil
}

// Reset clears the shared delay buffer and rewinds every voice LFO.
func (c *Chorus) Reset() {
	c.line.Reset()
	for _, osc := range c.oscs {
		osc.Reset()
	}
}

// SampleRate returns the sample rate in Hz.
func (c *Chorus) SampleRate() float64 { return c.sampleRate }

// NumVoices returns the number of voices.
func (c *Chorus) NumVoices() int { return len(c.oscs) }

// DryGain returns the dry signal gain.
func (c *Chorus) DryGain() float64 { return c.dryGain }

// VoiceDelays returns a copy of the per-voice base delays in samples.
func (c *Chorus) VoiceDelays() []int {
	return append([]int(nil), c.voiceDelays...)
}

// VoiceGains returns a copy of the per-voice wet gains.
func (c *Chorus) VoiceGains() []float64 {
	return append([]float64(nil), c.voiceGains...)
}
