// Package effects provides the delay-based and modulation effect processors:
//
//   - Comb: feedback delay with a damped feedback path.
//   - TappedDelayLine: fixed multi-tap delay summed from one shared buffer.
//   - Vibrato: LFO-modulated fractional delay tap (pitch modulation).
//   - Tremolo: LFO amplitude modulation, no delay line.
//   - Chorus: multiple LFO-modulated delay taps mixed with the dry signal.
//
// Every effect is built once through a validating constructor, then driven
// one sample per tick via ProcessSample. The hot path never allocates,
// never locks, and never branches on parameter validity; all validation
// happens at construction and setter time.
package effects
