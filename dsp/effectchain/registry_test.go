package effectchain

import (
	"errors"
	"testing"
)

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	factory := func(_ Context, _ Params) (Processor, error) {
		return &scaleProcessor{factor: 1}, nil
	}

	if err := r.Register("gain", factory); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register("gain", factory); !errors.Is(err, errDuplicateEffect) {
		t.Fatalf("duplicate Register error = %v, want %v", err, errDuplicateEffect)
	}
	if err := r.Register("", factory); err == nil {
		t.Fatal("Register with empty type must fail")
	}
	if err := r.Register("other", nil); err == nil {
		t.Fatal("Register with nil factory must fail")
	}

	if r.Lookup("gain") == nil {
		t.Fatal("Lookup(gain) = nil after Register")
	}
	if r.Lookup("missing") != nil {
		t.Fatal("Lookup(missing) must return nil")
	}
}

func TestDefaultRegistryBuildsEveryType(t *testing.T) {
	tests := []struct {
		effectType string
		params     Params
	}{
		{"comb", Params{Num: map[string]float64{"delay": 0.01}}},
		{"tappedDelay", Params{Vec: map[string][]float64{
			"delays": {0, 0.01}, "gains": {0.5, 0.5},
		}}},
		{"vibrato", Params{Num: map[string]float64{"delay": 0.01, "width": 0.001}}},
		{"tremolo", Params{Num: map[string]float64{"frequency": 5, "depth": 0.5}}},
		{"chorus", Params{
			Num: map[string]float64{"dryGain": 0.7},
			Vec: map[string][]float64{
				"delays":    {0.02, 0.03},
				"modFreqs":  {1, 1.5},
				"modWidths": {0.001, 0.002},
				"gains":     {0.4, 0.3},
			},
		}},
		{"lowpass", Params{Num: map[string]float64{"cutoff": 2000}}},
		{"highpass", Params{Num: map[string]float64{"cutoff": 200, "resonance": 0.3}}},
		{"bandpass", Params{Num: map[string]float64{"cutoff": 1000}}},
		{"notch", Params{Num: map[string]float64{"cutoff": 60}}},
		{"equalizer", Params{
			Num: map[string]float64{"numBands": 5},
			Vec: map[string][]float64{"gains": {0, 3, -3, 6, 0}},
		}},
	}

	r := DefaultRegistry()
	ctx := Context{SampleRate: 44100}

	for _, tt := range tests {
		t.Run(tt.effectType, func(t *testing.T) {
			factory := r.Lookup(tt.effectType)
			if factory == nil {
				t.Fatalf("Lookup(%s) = nil", tt.effectType)
			}

			p := tt.params
			p.Type = tt.effectType

			proc, err := factory(ctx, p)
			if err != nil {
				t.Fatalf("factory(%s): %v", tt.effectType, err)
			}
			if proc == nil {
				t.Fatalf("factory(%s) returned nil processor", tt.effectType)
			}

			proc.ProcessSample(0.5)
			proc.Reset()
		})
	}
}

func TestParamsAccessors(t *testing.T) {
	p := Params{
		Num: map[string]float64{"cutoff": 1000},
		Vec: map[string][]float64{"gains": {1, 2}},
	}

	if got := p.GetNum("cutoff", 0); got != 1000 {
		t.Fatalf("GetNum(cutoff) = %v, want 1000", got)
	}
	if got := p.GetNum("missing", 7); got != 7 {
		t.Fatalf("GetNum(missing) = %v, want default 7", got)
	}
	if !p.HasNum("cutoff") || p.HasNum("missing") {
		t.Fatal("HasNum mismatch")
	}
	if !p.HasVec("gains") || p.HasVec("missing") {
		t.Fatal("HasVec mismatch")
	}
	if got := (Params{}).GetNum("x", 3); got != 3 {
		t.Fatalf("GetNum on empty Params = %v, want 3", got)
	}
}
