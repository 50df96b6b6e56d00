package effects

import (
	"errors"
	"testing"

	"github.com/marksweiss/rosco/dsp/core"
	"github.com/marksweiss/rosco/internal/testutil"
)

func TestNewChorusValidation(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		opts       []ChorusOption
		wantErr    error
	}{
		{"zero sample rate", 0,
			[]ChorusOption{WithVoices([]float64{0.02}, []float64{1}, []float64{0.001}, []float64{0.5})},
			core.ErrOutOfRange},
		{"missing voices", 44100, nil, core.ErrMissingRequiredField},
		{"empty voices", 44100,
			[]ChorusOption{WithVoices(nil, nil, nil, nil)}, core.ErrOutOfRange},
		{"mismatched gains", 44100,
			[]ChorusOption{WithVoices([]float64{0.02, 0.03}, []float64{1, 1}, []float64{0.001, 0.001}, []float64{0.5})},
			core.ErrMismatchedLengths},
		{"mismatched mod freqs", 44100,
			[]ChorusOption{WithVoices([]float64{0.02}, []float64{1, 1}, []float64{0.001}, []float64{0.5})},
			core.ErrMismatchedLengths},
		{"width at delay", 44100,
			[]ChorusOption{WithVoices([]float64{0.01}, []float64{1}, []float64{0.01}, []float64{0.5})},
			core.ErrOutOfRange},
		{"negative dry gain", 44100,
			[]ChorusOption{
				WithVoices([]float64{0.02}, []float64{1}, []float64{0.001}, []float64{0.5}),
				WithDryGain(-1),
			},
			core.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChorus(tt.sampleRate, tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewChorus error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestChorusSingleStaticVoiceIsPureDelay(t *testing.T) {
	const delay = 441

	ch, err := NewChorus(44100,
		WithVoices([]float64{0.01}, []float64{0}, []float64{0}, []float64{1}),
		WithDryGain(0))
	if err != nil {
		t.Fatalf("NewChorus: %v", err)
	}

	out := testutil.Impulse(2*delay, 0)
	ch.ProcessInPlace(out)

	want := make([]float64, 2*delay)
	want[delay] = 1
	testutil.RequireSliceNearlyEqual(t, out, want, 0)
}

func TestChorusDryPath(t *testing.T) {
	ch, err := NewChorus(44100,
		WithVoices([]float64{0.02}, []float64{2}, []float64{0.001}, []float64{0}),
		WithDryGain(0.25))
	if err != nil {
		t.Fatalf("NewChorus: %v", err)
	}

	in := testutil.DeterministicSine(440, 44100, 1, 2048)
	out := append([]float64(nil), in...)
	ch.ProcessInPlace(out)

	want := make([]float64, len(in))
	for i := range want {
		want[i] = 0.25 * in[i]
	}
	testutil.RequireSliceNearlyEqual(t, out, want, 0)
}

func TestChorusOutputBounded(t *testing.T) {
	delays := []float64{0.015, 0.02, 0.025, 0.03}
	modFreqs := []float64{0.8, 1.0, 1.2, 1.4}
	modWidths := []float64{0.002, 0.002, 0.003, 0.003}
	gains := []float64{0.4, 0.35, 0.3, 0.25}

	ch, err := NewChorus(44100,
		WithVoices(delays, modFreqs, modWidths, gains),
		WithDryGain(0.7))
	if err != nil {
		t.Fatalf("NewChorus: %v", err)
	}
	if ch.NumVoices() != 4 {
		t.Fatalf("NumVoices() = %d, want 4", ch.NumVoices())
	}

	out := testutil.DeterministicSine(440, 44100, 1, 2*44100)
	ch.ProcessInPlace(out)
	testutil.RequireFinite(t, out)

	// Each voice reads a convex combination of unit-bounded history, so the
	// output magnitude is bounded by the dry gain plus the sum of wet gains.
	bound := 0.7
	for _, g := range gains {
		bound += g
	}
	if peak := testutil.PeakAbs(out); peak > bound+1e-12 {
		t.Fatalf("peak = %v, want <= %v", peak, bound)
	}
}

func TestChorusReset(t *testing.T) {
	ch, err := NewChorus(44100,
		WithVoices([]float64{0.01, 0.02}, []float64{1, 1.5}, []float64{0.001, 0.002}, []float64{0.5, 0.4}),
		WithDryGain(0.6))
	if err != nil {
		t.Fatalf("NewChorus: %v", err)
	}

	in := testutil.DeterministicNoise(7, 1, 4096)

	first := append([]float64(nil), in...)
	ch.ProcessInPlace(first)

	ch.Reset()

	second := append([]float64(nil), in...)
	ch.ProcessInPlace(second)

	testutil.RequireSliceNearlyEqual(t, second, first, 0)
}

func TestChorusSetDryGain(t *testing.T) {
	ch, err := NewChorus(44100,
		WithVoices([]float64{0.02}, []float64{1}, []float64{0.001}, []float64{0}))
	if err != nil {
		t.Fatalf("NewChorus: %v", err)
	}

	if err := ch.SetDryGain(0.5); err != nil {
		t.Fatalf("SetDryGain: %v", err)
	}
	if got := ch.ProcessSample(1); got != 0.5 {
		t.Fatalf("ProcessSample(1) = %v with dry gain 0.5 and silent voices, want 0.5", got)
	}

	if err := ch.SetDryGain(-0.5); !errors.Is(err, core.ErrOutOfRange) {
		t.Fatalf("SetDryGain(-0.5) error = %v, want %v", err, core.ErrOutOfRange)
	}
}
