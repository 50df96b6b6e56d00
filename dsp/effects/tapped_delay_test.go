package effects

import (
	"errors"
	"testing"

	"github.com/marksweiss/rosco/dsp/core"
	"github.com/marksweiss/rosco/internal/testutil"
)

func TestNewTappedDelayLineValidation(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		opts       []TappedDelayOption
		wantErr    error
	}{
		{"zero sample rate", 0, []TappedDelayOption{WithTaps([]float64{0.01}, []float64{1})}, core.ErrOutOfRange},
		{"missing taps", 44100, nil, core.ErrMissingRequiredField},
		{"empty taps", 44100, []TappedDelayOption{WithTaps(nil, nil)}, core.ErrOutOfRange},
		{"mismatched lengths", 44100,
			[]TappedDelayOption{WithTaps([]float64{0.01, 0.02}, []float64{1})}, core.ErrMismatchedLengths},
		{"negative tap delay", 44100,
			[]TappedDelayOption{WithTaps([]float64{-0.01}, []float64{1})}, core.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTappedDelayLine(tt.sampleRate, tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewTappedDelayLine error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTappedDelayLineEchoTiming(t *testing.T) {
	td, err := NewTappedDelayLine(44100,
		WithTaps([]float64{0, 0.01, 0.02}, []float64{0.5, 0.3, 0.2}))
	if err != nil {
		t.Fatalf("NewTappedDelayLine: %v", err)
	}

	out := testutil.Impulse(1000, 0)
	td.ProcessInPlace(out)

	want := make([]float64, 1000)
	want[0] = 0.5
	want[441] = 0.3
	want[882] = 0.2
	testutil.RequireSliceNearlyEqual(t, out, want, 0)
}

func TestTappedDelayLineLinearity(t *testing.T) {
	const (
		a = 0.7
		b = -1.3
		n = 2048
	)

	x1 := testutil.DeterministicNoise(1, 1, n)
	x2 := testutil.DeterministicNoise(2, 1, n)

	newInstance := func() *TappedDelayLine {
		td, err := NewTappedDelayLine(44100,
			WithTaps([]float64{0.001, 0.005, 0.01}, []float64{0.6, -0.4, 0.25}))
		if err != nil {
			t.Fatalf("NewTappedDelayLine: %v", err)
		}
		return td
	}

	y1 := append([]float64(nil), x1...)
	newInstance().ProcessInPlace(y1)

	y2 := append([]float64(nil), x2...)
	newInstance().ProcessInPlace(y2)

	mixed := make([]float64, n)
	for i := range mixed {
		mixed[i] = a*x1[i] + b*x2[i]
	}
	newInstance().ProcessInPlace(mixed)

	want := make([]float64, n)
	for i := range want {
		want[i] = a*y1[i] + b*y2[i]
	}
	testutil.RequireSliceNearlyEqual(t, mixed, want, 1e-12)
}

func TestTappedDelayLineReset(t *testing.T) {
	td, err := NewTappedDelayLine(44100, WithTaps([]float64{0.005}, []float64{1}))
	if err != nil {
		t.Fatalf("NewTappedDelayLine: %v", err)
	}

	td.ProcessSample(1)
	td.Reset()

	for i := 0; i < 500; i++ {
		if got := td.ProcessSample(0); got != 0 {
			t.Fatalf("out[%d] = %v after Reset, want 0", i, got)
		}
	}
}

func TestTappedDelayLineAccessors(t *testing.T) {
	td, err := NewTappedDelayLine(44100,
		WithTaps([]float64{0.01, 0.02}, []float64{0.5, 0.25}))
	if err != nil {
		t.Fatalf("NewTappedDelayLine: %v", err)
	}

	if td.NumTaps() != 2 {
		t.Fatalf("NumTaps() = %d, want 2", td.NumTaps())
	}

	delays := td.TapDelays()
	if delays[0] != 441 || delays[1] != 882 {
		t.Fatalf("TapDelays() = %v, want [441 882]", delays)
	}

	gains := td.TapGains()
	gains[0] = 99
	if td.TapGains()[0] != 0.5 {
		t.Fatal("TapGains() must return a copy")
	}
}
