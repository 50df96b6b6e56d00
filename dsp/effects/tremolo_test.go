package effects

import (
	"errors"
	"testing"

	"github.com/marksweiss/rosco/dsp/core"
	"github.com/marksweiss/rosco/internal/testutil"
)

func TestNewTremoloValidation(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		opts       []TremoloOption
		wantErr    error
	}{
		{"zero sample rate", 0, nil, core.ErrOutOfRange},
		{"negative frequency", 44100, []TremoloOption{WithTremoloFrequency(-1)}, core.ErrOutOfRange},
		{"depth above one", 44100, []TremoloOption{WithTremoloDepth(1.5)}, core.ErrOutOfRange},
		{"negative depth", 44100, []TremoloOption{WithTremoloDepth(-0.1)}, core.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTremolo(tt.sampleRate, tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewTremolo error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTremoloZeroDepthIsIdentity(t *testing.T) {
	trem, err := NewTremolo(44100, WithTremoloDepth(0), WithTremoloFrequency(7))
	if err != nil {
		t.Fatalf("NewTremolo: %v", err)
	}

	in := testutil.DeterministicSine(440, 44100, 1, 4096)
	out := append([]float64(nil), in...)
	trem.ProcessInPlace(out)

	testutil.RequireSliceNearlyEqual(t, out, in, 0)
}

func TestTremoloFullDepthEnvelope(t *testing.T) {
	// 441 Hz modulation at 44100 Hz gives a 100-sample cycle, so the gain
	// peaks at index 24 (quarter cycle) and bottoms out at index 74.
	trem, err := NewTremolo(44100, WithTremoloDepth(1), WithTremoloFrequency(441))
	if err != nil {
		t.Fatalf("NewTremolo: %v", err)
	}

	out := make([]float64, 100)
	for i := range out {
		out[i] = trem.ProcessSample(1)
	}

	testutil.RequireNearlyEqual(t, out[24], 1, 1e-12)
	testutil.RequireNearlyEqual(t, out[74], 0, 1e-12)

	for i, v := range out {
		if v < -1e-12 || v > 1+1e-12 {
			t.Fatalf("out[%d] = %v outside the full-depth envelope [0, 1]", i, v)
		}
	}
}

func TestTremoloPartialDepthBounds(t *testing.T) {
	const depth = 0.6

	trem, err := NewTremolo(44100, WithTremoloDepth(depth), WithTremoloFrequency(5))
	if err != nil {
		t.Fatalf("NewTremolo: %v", err)
	}

	for i := 0; i < 44100; i++ {
		v := trem.ProcessSample(1)
		if v < 1-depth-1e-12 || v > 1+1e-12 {
			t.Fatalf("out[%d] = %v outside [%v, 1]", i, v, 1-depth)
		}
	}
}

func TestTremoloSetDepth(t *testing.T) {
	trem, err := NewTremolo(44100, WithTremoloDepth(1), WithTremoloFrequency(5))
	if err != nil {
		t.Fatalf("NewTremolo: %v", err)
	}

	if err := trem.SetDepth(0); err != nil {
		t.Fatalf("SetDepth: %v", err)
	}
	if got := trem.ProcessSample(0.5); got != 0.5 {
		t.Fatalf("ProcessSample(0.5) = %v after SetDepth(0), want 0.5", got)
	}

	if err := trem.SetDepth(2); !errors.Is(err, core.ErrOutOfRange) {
		t.Fatalf("SetDepth(2) error = %v, want %v", err, core.ErrOutOfRange)
	}
	if trem.Depth() != 0 {
		t.Fatalf("Depth() = %v after rejected SetDepth, want 0", trem.Depth())
	}
}

func TestTremoloReset(t *testing.T) {
	trem, err := NewTremolo(44100, WithTremoloDepth(1), WithTremoloFrequency(3))
	if err != nil {
		t.Fatalf("NewTremolo: %v", err)
	}

	first := make([]float64, 1000)
	for i := range first {
		first[i] = trem.ProcessSample(1)
	}

	trem.Reset()

	second := make([]float64, 1000)
	for i := range second {
		second[i] = trem.ProcessSample(1)
	}

	testutil.RequireSliceNearlyEqual(t, second, first, 0)
}
