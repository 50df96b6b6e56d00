package effects

import (
	"fmt"

	"github.com/marksweiss/rosco/dsp/core"
	"github.com/marksweiss/rosco/dsp/delay"
)

// TappedDelayOption mutates tapped delay construction parameters.
type TappedDelayOption func(*tappedDelayConfig) error

type tappedDelayConfig struct {
	tapDelays []float64
	tapGains  []float64
}

// WithTaps sets the tap delay times in seconds and the matching tap gains.
// Required. The slices must have equal length.
func WithTaps(delaySeconds, gains []float64) TappedDelayOption {
	return func(cfg *tappedDelayConfig) error {
		if len(delaySeconds) == 0 {
			return fmt.Errorf("%w: at least one tap required", core.ErrOutOfRange)
		}
		if len(delaySeconds) != len(gains) {
			return fmt.Errorf("%w: %d tap delays vs %d tap gains",
				core.ErrMismatchedLengths, len(delaySeconds), len(gains))
		}
		for i, d := range delaySeconds {
			if d < 0 || !core.IsFinite(d) {
				return fmt.Errorf("%w: tap delay %d must be >= 0 and finite: %f", core.ErrOutOfRange, i, d)
			}
		}
		for i, g := range gains {
			if !core.IsFinite(g) {
				return fmt.Errorf("%w: tap gain %d must be finite: %f", core.ErrOutOfRange, i, g)
			}
		}

		cfg.tapDelays = append([]float64(nil), delaySeconds...)
		cfg.tapGains = append([]float64(nil), gains...)

		return nil
	}
}

// TappedDelayLine sums multiple fixed-gain taps read from one shared delay
// buffer. It has no feedback path and is therefore a pure FIR structure.
type TappedDelayLine struct {
	sampleRate float64
	tapDelays  []int
	tapGains   []float64

	line *delay.Line
}

// NewTappedDelayLine creates a tapped delay line. The tap set is required.
func NewTappedDelayLine(sampleRate float64, opts ...TappedDelayOption) (*TappedDelayLine, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: tapped delay sample rate must be > 0 and finite: %f",
			core.ErrOutOfRange, sampleRate)
	}

	var cfg tappedDelayConfig
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.tapDelays == nil {
		return nil, fmt.Errorf("%w: tapped delay taps", core.ErrMissingRequiredField)
	}

	tapDelays := make([]int, len(cfg.tapDelays))
	maxDelay := 0
	for i, seconds := range cfg.tapDelays {
		tapDelays[i] = core.SecondsToSamples(seconds, sampleRate)
		maxDelay = max(maxDelay, tapDelays[i])
	}

	line, err := delay.New(maxDelay + 1)
	if err != nil {
		return nil, err
	}
	if maxDelay+1 > line.Len() {
		return nil, fmt.Errorf("%w: tap delay %d samples exceeds buffer of %d",
			core.ErrInsufficientCapacity, maxDelay, line.Len())
	}

	return &TappedDelayLine{
		sampleRate: sampleRate,
		tapDelays:  tapDelays,
		tapGains:   append([]float64(nil), cfg.tapGains...),
		line:       line,
	}, nil
}

// ProcessSample writes the input first and then reads every tap, so a tap
// with delay zero contributes the current input scaled by its gain.
func (t *TappedDelayLine) ProcessSample(x float64) float64 {
	t.line.Write(x)

	var sum float64
	for i, d := range t.tapDelays {
		sum += t.tapGains[i] * t.line.Read(d+1)
	}

	return sum
}

// ProcessInPlace applies the tapped delay to buf in place.
func (t *TappedDelayLine) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = t.ProcessSample(buf[i])
	}
}

// Reset clears the shared delay buffer.
func (t *TappedDelayLine) Reset() {
	t.line.Reset()
}

// SampleRate returns the sample rate in Hz.
func (t *TappedDelayLine) SampleRate() float64 { return t.sampleRate }

// NumTaps returns the number of taps.
func (t *TappedDelayLine) NumTaps() int { return len(t.tapDelays) }

// TapDelays returns a copy of the tap delays in samples.
func (t *TappedDelayLine) TapDelays() []int {
	return append([]int(nil), t.tapDelays...)
}

// TapGains returns a copy of the tap gains.
func (t *TappedDelayLine) TapGains() []float64 {
	return append([]float64(nil), t.tapGains...)
}
