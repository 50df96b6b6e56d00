package effectchain

import (
	"github.com/marksweiss/rosco/dsp/effects"
	"github.com/marksweiss/rosco/dsp/filter"
	"github.com/marksweiss/rosco/dsp/filter/eq"
)

// DefaultRegistry returns a Registry pre-populated with every built-in
// processor. Options are appended only for parameter keys the node actually
// carries, so defaults and required-field checks stay with the constructors.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister("comb", func(ctx Context, p Params) (Processor, error) {
		var opts []effects.CombOption
		if p.HasNum("delay") {
			opts = append(opts, effects.WithCombDelay(p.GetNum("delay", 0)))
		}
		if p.HasNum("feedback") {
			opts = append(opts, effects.WithCombFeedback(p.GetNum("feedback", 0)))
		}
		if p.HasNum("damp") {
			opts = append(opts, effects.WithCombDamp(p.GetNum("damp", 0)))
		}

		return effects.NewComb(ctx.SampleRate, opts...)
	})

	r.MustRegister("tappedDelay", func(ctx Context, p Params) (Processor, error) {
		var opts []effects.TappedDelayOption
		if p.HasVec("delays") || p.HasVec("gains") {
			opts = append(opts, effects.WithTaps(p.GetVec("delays"), p.GetVec("gains")))
		}

		return effects.NewTappedDelayLine(ctx.SampleRate, opts...)
	})

	r.MustRegister("vibrato", func(ctx Context, p Params) (Processor, error) {
		var opts []effects.VibratoOption
		if p.HasNum("delay") {
			opts = append(opts, effects.WithVibratoDelay(p.GetNum("delay", 0)))
		}
		if p.HasNum("width") {
			opts = append(opts, effects.WithVibratoWidth(p.GetNum("width", 0)))
		}
		if p.HasNum("frequency") {
			opts = append(opts, effects.WithVibratoFrequency(p.GetNum("frequency", 0)))
		}

		return effects.NewVibrato(ctx.SampleRate, opts...)
	})

	r.MustRegister("tremolo", func(ctx Context, p Params) (Processor, error) {
		var opts []effects.TremoloOption
		if p.HasNum("frequency") {
			opts = append(opts, effects.WithTremoloFrequency(p.GetNum("frequency", 0)))
		}
		if p.HasNum("depth") {
			opts = append(opts, effects.WithTremoloDepth(p.GetNum("depth", 0)))
		}

		return effects.NewTremolo(ctx.SampleRate, opts...)
	})

	r.MustRegister("chorus", func(ctx Context, p Params) (Processor, error) {
		var opts []effects.ChorusOption
		if p.HasVec("delays") || p.HasVec("modFreqs") || p.HasVec("modWidths") || p.HasVec("gains") {
			opts = append(opts, effects.WithVoices(
				p.GetVec("delays"), p.GetVec("modFreqs"), p.GetVec("modWidths"), p.GetVec("gains")))
		}
		if p.HasNum("dryGain") {
			opts = append(opts, effects.WithDryGain(p.GetNum("dryGain", 0)))
		}

		return effects.NewChorus(ctx.SampleRate, opts...)
	})

	for name, kind := range map[string]filter.Kind{
		"lowpass":  filter.LowPass,
		"highpass": filter.HighPass,
		"bandpass": filter.BandPass,
		"notch":    filter.Notch,
	} {
		r.MustRegister(name, filterFactory(kind))
	}

	r.MustRegister("equalizer", func(ctx Context, p Params) (Processor, error) {
		var opts []eq.Option
		if p.HasNum("numBands") {
			opts = append(opts, eq.WithNumBands(int(p.GetNum("numBands", 0))))
		}
		if p.HasVec("gains") {
			opts = append(opts, eq.WithGains(p.GetVec("gains")))
		}

		return eq.New(ctx.SampleRate, opts...)
	})

	return r
}

func filterFactory(kind filter.Kind) Factory {
	return func(ctx Context, p Params) (Processor, error) {
		var opts []filter.Option
		if p.HasNum("cutoff") {
			opts = append(opts, filter.WithCutoff(p.GetNum("cutoff", 0)))
		}
		if p.HasNum("resonance") {
			opts = append(opts, filter.WithResonance(p.GetNum("resonance", 0)))
		}
		if p.HasNum("mix") {
			opts = append(opts, filter.WithMix(p.GetNum("mix", 0)))
		}

		return filter.New(kind, ctx.SampleRate, opts...)
	}
}
