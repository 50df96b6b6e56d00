// Package effectchain drives an ordered sequence of sample processors the
// way a host application consumes them: a Registry maps effect type names
// to factories, Params carries a node's loader-parsed parameters, and Chain
// routes each processor's output into the next, one sample per tick.
// All validation happens when the chain is built; a chain that constructs
// successfully never fails while processing.
package effectchain
