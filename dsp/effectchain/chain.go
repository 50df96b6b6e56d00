package effectchain

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"github.com/marksweiss/rosco/dsp/core"
)

// ErrUnknownEffect is returned when a node references an unregistered effect type.
var ErrUnknownEffect = errors.New("unknown effect type")

// Processor is the per-sample contract every chain node satisfies.
type Processor interface {
	ProcessSample(x float64) float64
	Reset()
}

type node struct {
	name       string
	effectType string
	bypassed   bool
	proc       Processor
}

// Chain drives an ordered sequence of processors: each node's output feeds
// the next node's input, one sample per tick. Construction validates every
// node; a chain that builds never fails during processing.
type Chain struct {
	ctx        Context
	nodes      []node
	outputGain float64
}

// New builds a chain from an ordered parameter list. Each entry is resolved
// through the registry and constructed immediately; the first failure aborts
// construction.
func New(ctx Context, registry *Registry, params []Params) (*Chain, error) {
	if registry == nil {
		return nil, fmt.Errorf("%w: registry", core.ErrMissingRequiredField)
	}
	if ctx.SampleRate <= 0 || !core.IsFinite(ctx.SampleRate) {
		return nil, fmt.Errorf("%w: chain sample rate must be > 0 and finite: %f",
			core.ErrOutOfRange, ctx.SampleRate)
	}

	nodes := make([]node, 0, len(params))
	for _, p := range params {
		factory := registry.Lookup(p.Type)
		if factory == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEffect, p.Type)
		}

		proc, err := factory(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("effectchain: build node %q (%s): %w", p.Name, p.Type, err)
		}

		nodes = append(nodes, node{
			name:       p.Name,
			effectType: p.Type,
			bypassed:   p.Bypassed,
			proc:       proc,
		})
	}

	return &Chain{
		ctx:        ctx,
		nodes:      nodes,
		outputGain: 1,
	}, nil
}

// ProcessSample feeds one sample through every non-bypassed node in order
// and applies the output gain.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.nodes {
		if c.nodes[i].bypassed {
			continue
		}
		x = c.nodes[i].proc.ProcessSample(x)
	}

	return x * c.outputGain
}

// ProcessBlock processes buf in place through the chain, then applies the
// output gain to the whole block in one pass.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range buf {
		x := buf[i]
		for j := range c.nodes {
			if c.nodes[j].bypassed {
				continue
			}
			x = c.nodes[j].proc.ProcessSample(x)
		}
		buf[i] = x
	}

	if c.outputGain != 1 {
		vecmath.ScaleBlock(buf, buf, c.outputGain)
	}
}

// SetOutputGain updates the linear gain applied after the last node.
func (c *Chain) SetOutputGain(gain float64) error {
	if gain < 0 || !core.IsFinite(gain) {
		return fmt.Errorf("%w: output gain must be >= 0 and finite: %f", core.ErrOutOfRange, gain)
	}

	c.outputGain = gain

	return nil
}

// SetBypassed toggles the node with the given name. Unknown names are a
// no-op returning false.
func (c *Chain) SetBypassed(name string, bypassed bool) bool {
	for i := range c.nodes {
		if c.nodes[i].name == name {
			c.nodes[i].bypassed = bypassed
			return true
		}
	}

	return false
}

// Reset clears the internal history of every node, bypassed or not.
func (c *Chain) Reset() {
	for i := range c.nodes {
		c.nodes[i].proc.Reset()
	}
}

// Len returns the number of nodes, including bypassed ones.
func (c *Chain) Len() int { return len(c.nodes) }

// OutputGain returns the linear gain applied after the last node.
func (c *Chain) OutputGain() float64 { return c.outputGain }

// Context returns the chain context.
func (c *Chain) Context() Context { return c.ctx }
