package delay

import (
	"fmt"
	"math"

	"github.com/marksweiss/rosco/dsp/core"
	"github.com/marksweiss/rosco/dsp/interp"
)

// Line is a fixed-capacity circular delay line. One sample is written per
// tick; reads address samples written up to Len() ticks ago.
//
// Effects read before they write: at a given tick, Read(d) returns the sample
// written exactly d ticks earlier. Capacity is fixed at construction, so a
// correctly sized line never sees an out-of-range read offset at runtime.
type Line struct {
	buffer   []float64
	writePos int
	mode     interp.Mode
}

// Option configures a Line.
type Option func(*Line)

// WithMode selects the fractional interpolation kernel. Default is
// interp.Linear.
func WithMode(mode interp.Mode) Option {
	return func(d *Line) {
		d.mode = mode
	}
}

// New returns a delay line holding size samples.
func New(size int, opts ...Option) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: delay size must be > 0: %d", core.ErrOutOfRange, size)
	}

	d := &Line{buffer: make([]float64, size)}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	return d, nil
}

// Len returns the buffer capacity in samples.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Mode returns the fractional interpolation mode.
func (d *Line) Mode() interp.Mode {
	return d.mode
}

// Write stores one sample at the cursor and advances it, wrapping at
// capacity.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read returns the sample written delay ticks ago. Valid delays are
// 1..Len(); values outside that range are clamped to it.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if delay < 1 {
		delay = 1
	} else if delay > size {
		delay = size
	}

	readPos := d.writePos - delay
	if readPos < 0 {
		readPos += size
	}

	return d.buffer[readPos]
}

// ReadFractional returns the interpolated sample at a fractional delay.
// The integer part selects the two (or four, in Hermite mode) bracketing
// samples; the fractional part drives the kernel.
func (d *Line) ReadFractional(delay float64) float64 {
	size := len(d.buffer)

	maxDelay := float64(size - 1)
	if delay < 1 {
		delay = 1
	} else if delay > maxDelay {
		delay = maxDelay
	}

	p := int(math.Floor(delay))
	t := delay - float64(p)

	if d.mode == interp.Hermite {
		xm1 := d.Read(max(1, p-1))
		x0 := d.Read(p)
		x1 := d.Read(p + 1)
		x2 := d.Read(min(size, p+2))

		return interp.Hermite4(t, xm1, x0, x1, x2)
	}

	return interp.Lerp(t, d.Read(p), d.Read(p+1))
}

// Reset zeroes the buffer and rewinds the cursor.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}

	d.writePos = 0
}
