// Package eq provides a multi-band equalizer built as a cascade of biquad
// sections: a low shelf on the first band, a high shelf on the last, and
// peaking sections in between, at log-spaced center frequencies.
package eq

import (
	"fmt"
	"math"

	"github.com/marksweiss/rosco/dsp/core"
	"github.com/marksweiss/rosco/dsp/filter/biquad"
	"github.com/marksweiss/rosco/dsp/filter/design"
)

const (
	defaultNumBands = 10

	// Band centers span this range, capped below Nyquist for low sample
	// rates.
	lowBandHz    = 60.0
	highBandHz   = 16000.0
	maxBandRatio = 0.45

	minGainDB = -24.0
	maxGainDB = 24.0

	shelfQ = 1 / math.Sqrt2
)

// Option mutates equalizer construction parameters.
type Option func(*eqConfig) error

type eqConfig struct {
	numBands int
	gainsDB  []float64
}

// WithNumBands sets the number of bands. At least two are required: the
// shelf pair at the extremes.
func WithNumBands(numBands int) Option {
	return func(cfg *eqConfig) error {
		if numBands < 2 {
			return fmt.Errorf("%w: equalizer needs at least 2 bands: %d", core.ErrOutOfRange, numBands)
		}
		cfg.numBands = numBands
		return nil
	}
}

// WithGains sets the per-band gains in dB. The slice length must equal the
// band count; each gain must lie in [-24, 24] dB.
func WithGains(gainsDB []float64) Option {
	return func(cfg *eqConfig) error {
		for _, g := range gainsDB {
			if g < minGainDB || g > maxGainDB || !core.IsFinite(g) {
				return fmt.Errorf("%w: equalizer band gain must be in [%g, %g] dB: %f",
					core.ErrOutOfRange, minGainDB, maxGainDB, g)
			}
		}
		cfg.gainsDB = append([]float64(nil), gainsDB...)
		return nil
	}
}

// Equalizer is a cascade of shelf and peaking biquad sections, one per band.
type Equalizer struct {
	sampleRate float64
	freqs      []float64
	gainsDB    []float64
	bandQ      float64
	chain      *biquad.Chain
}

// New creates an equalizer for the given sample rate. With no options it has
// ten bands at 0 dB, which passes the input through unchanged.
func New(sampleRate float64, opts ...Option) (*Equalizer, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: equalizer sample rate must be > 0 and finite: %f", core.ErrOutOfRange, sampleRate)
	}

	cfg := eqConfig{numBands: defaultNumBands}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.gainsDB == nil {
		cfg.gainsDB = make([]float64, cfg.numBands)
	}

	if len(cfg.gainsDB) != cfg.numBands {
		return nil, fmt.Errorf("%w: equalizer has %d bands but %d gains",
			core.ErrMismatchedLengths, cfg.numBands, len(cfg.gainsDB))
	}

	e := &Equalizer{
		sampleRate: sampleRate,
		freqs:      bandFrequencies(sampleRate, cfg.numBands),
		gainsDB:    cfg.gainsDB,
	}
	e.bandQ = peakingQ(e.freqs)

	coeffs := make([]biquad.Coefficients, cfg.numBands)
	for i := range coeffs {
		coeffs[i] = e.designBand(i)
	}
	e.chain = biquad.NewChain(coeffs)

	return e, nil
}

// ProcessSample feeds x through every band section in sequence.
func (e *Equalizer) ProcessSample(x float64) float64 {
	return e.chain.ProcessSample(x)
}

// ProcessInPlace equalizes buf in place.
func (e *Equalizer) ProcessInPlace(buf []float64) {
	e.chain.ProcessBlock(buf)
}

// SetBandGain updates one band's gain in dB and re-derives that band's
// coefficients. Filter state is preserved, so a running signal glitches as
// little as the coefficient step allows.
func (e *Equalizer) SetBandGain(band int, gainDB float64) error {
	if band < 0 || band >= e.chain.NumSections() {
		return fmt.Errorf("%w: equalizer band index %d of %d", core.ErrOutOfRange, band, e.chain.NumSections())
	}

	if gainDB < minGainDB || gainDB > maxGainDB || !core.IsFinite(gainDB) {
		return fmt.Errorf("%w: equalizer band gain must be in [%g, %g] dB: %f",
			core.ErrOutOfRange, minGainDB, maxGainDB, gainDB)
	}

	e.gainsDB[band] = gainDB
	e.chain.Section(band).Coefficients = e.designBand(band)

	return nil
}

// Reset clears every band's filter history.
func (e *Equalizer) Reset() {
	e.chain.Reset()
}

// NumBands returns the band count.
func (e *Equalizer) NumBands() int {
	return e.chain.NumSections()
}

// SampleRate returns the sample rate in Hz.
func (e *Equalizer) SampleRate() float64 { return e.sampleRate }

// BandFrequencies returns a copy of the band center frequencies in Hz.
func (e *Equalizer) BandFrequencies() []float64 {
	return append([]float64(nil), e.freqs...)
}

// Gains returns a copy of the per-band gains in dB.
func (e *Equalizer) Gains() []float64 {
	return append([]float64(nil), e.gainsDB...)
}

// Response computes the cascaded complex frequency response at freqHz.
func (e *Equalizer) Response(freqHz float64) complex128 {
	h := complex(1, 0)
	for i := 0; i < e.chain.NumSections(); i++ {
		h *= e.chain.Section(i).Response(freqHz, e.sampleRate)
	}

	return h
}

// MagnitudeDB returns the cascaded magnitude response in dB at freqHz.
func (e *Equalizer) MagnitudeDB(freqHz float64) float64 {
	db := 0.0
	for i := 0; i < e.chain.NumSections(); i++ {
		db += e.chain.Section(i).MagnitudeDB(freqHz, e.sampleRate)
	}

	return db
}

func (e *Equalizer) designBand(band int) biquad.Coefficients {
	freq := e.freqs[band]
	gain := e.gainsDB[band]

	switch band {
	case 0:
		return design.LowShelf(freq, gain, shelfQ, e.sampleRate)
	case len(e.freqs) - 1:
		return design.HighShelf(freq, gain, shelfQ, e.sampleRate)
	default:
		return design.Peak(freq, gain, e.bandQ, e.sampleRate)
	}
}

// bandFrequencies spaces numBands centers logarithmically between the low
// band and the high band, capped relative to Nyquist for low sample rates.
func bandFrequencies(sampleRate float64, numBands int) []float64 {
	low := lowBandHz
	high := math.Min(highBandHz, sampleRate*maxBandRatio)
	ratio := math.Pow(high/low, 1/float64(numBands-1))

	freqs := make([]float64, numBands)
	f := low
	for i := range freqs {
		freqs[i] = f
		f *= ratio
	}
	freqs[numBands-1] = high

	return freqs
}

// peakingQ derives the interior-band quality factor from the spacing ratio,
// so neighboring bands cross over near their band edges.
func peakingQ(freqs []float64) float64 {
	if len(freqs) < 2 {
		return 1
	}

	ratio := freqs[1] / freqs[0]

	return math.Sqrt(ratio) / (ratio - 1)
}
