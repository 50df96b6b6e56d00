package effects

import (
	"fmt"

	"github.com/marksweiss/rosco/dsp/core"
	"github.com/marksweiss/rosco/dsp/delay"
)

const (
	defaultCombFeedback = 0.5
	defaultCombDamp     = 0.2
)

// CombOption mutates comb construction parameters.
type CombOption func(*combConfig) error

type combConfig struct {
	delaySeconds float64
	feedback     float64
	damp         float64
}

func defaultCombConfig() combConfig {
	return combConfig{
		delaySeconds: -1, // required
		feedback:     defaultCombFeedback,
		damp:         defaultCombDamp,
	}
}

// WithCombDelay sets the delay time in seconds. Required.
func WithCombDelay(seconds float64) CombOption {
	return func(cfg *combConfig) error {
		if seconds <= 0 || !core.IsFinite(seconds) {
			return fmt.Errorf("%w: comb delay must be > 0 and finite: %f", core.ErrOutOfRange, seconds)
		}
		cfg.delaySeconds = seconds
		return nil
	}
}

// WithCombFeedback sets the feedback amount in [0, 1). Feedback at or above
// 1 makes the loop gain unbounded and is rejected.
func WithCombFeedback(feedback float64) CombOption {
	return func(cfg *combConfig) error {
		if feedback < 0 || feedback >= 1 || !core.IsFinite(feedback) {
			return fmt.Errorf("%w: comb feedback must be in [0, 1): %f", core.ErrOutOfRange, feedback)
		}
		cfg.feedback = feedback
		return nil
	}
}

// WithCombDamp sets the feedback damping in [0, 1]: 0 leaves the feedback
// path untouched, 1 fully lowpasses it.
func WithCombDamp(damp float64) CombOption {
	return func(cfg *combConfig) error {
		if damp < 0 || damp > 1 || !core.IsFinite(damp) {
			return fmt.Errorf("%w: comb damp must be in [0, 1]: %f", core.ErrOutOfRange, damp)
		}
		cfg.damp = damp
		return nil
	}
}

// Comb is a feedback comb filter: a delay line whose output is fed back
// into its input through a one-pole damping filter.
type Comb struct {
	sampleRate   float64
	delaySamples int
	feedback     float64
	damp         float64

	line  *delay.Line
	store float64
}

// NewComb creates a comb filter. The delay time is required; feedback and
// damp have musical defaults.
func NewComb(sampleRate float64, opts ...CombOption) (*Comb, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: comb sample rate must be > 0 and finite: %f", core.ErrOutOfRange, sampleRate)
	}

	cfg := defaultCombConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.delaySeconds <= 0 {
		return nil, fmt.Errorf("%w: comb delay", core.ErrMissingRequiredField)
	}

	delaySamples := core.SecondsToSamples(cfg.delaySeconds, sampleRate)
	if delaySamples < 1 {
		delaySamples = 1
	}

	line, err := delay.New(delaySamples + 1)
	if err != nil {
		return nil, err
	}

	return &Comb{
		sampleRate:   sampleRate,
		delaySamples: delaySamples,
		feedback:     cfg.feedback,
		damp:         cfg.damp,
		line:         line,
	}, nil
}

// ProcessSample processes one sample. The delayed signal is read first, the
// damped feedback state is updated, and only then is the new input written,
// so the observed delay is exactly the configured length.
func (c *Comb) ProcessSample(x float64) float64 {
	delayed := c.line.Read(c.delaySamples)

	c.store = core.FlushDenormals(delayed*(1-c.damp) + c.store*c.damp)
	c.line.Write(x + c.store*c.feedback)

	return delayed
}

// ProcessInPlace applies the comb to buf in place.
func (c *Comb) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = c.ProcessSample(buf[i])
	}
}

// SetFeedback updates the feedback amount in [0, 1) without clearing the
// delay line or the damping state.
func (c *Comb) SetFeedback(feedback float64) error {
	if feedback < 0 || feedback >= 1 || !core.IsFinite(feedback) {
		return fmt.Errorf("%w: comb feedback must be in [0, 1): %f", core.ErrOutOfRange, feedback)
	}

	c.feedback = feedback

	return nil
}

// SetDamp updates the feedback damping in [0, 1] without clearing state.
func (c *Comb) SetDamp(damp float64) error {
	if damp < 0 || damp > 1 || !core.IsFinite(damp) {
		return fmt.Errorf("%w: comb damp must be in [0, 1]: %f", core.ErrOutOfRange, damp)
	}

	c.damp = damp

	return nil
}

// Reset clears the delay line and the feedback state.
func (c *Comb) Reset() {
	c.line.Reset()
	c.store = 0
}

// SampleRate returns the sample rate in Hz.
func (c *Comb) SampleRate() float64 { return c.sampleRate }

// DelaySamples returns the delay length in samples.
func (c *Comb) DelaySamples() int { return c.delaySamples }

// Feedback returns the feedback amount in [0, 1).
func (c *Comb) Feedback() float64 { return c.feedback }

// Damp returns the feedback damping in [0, 1].
func (c *Comb) Damp() float64 { return c.damp }
