// Package param provides the lock-free parameter bridge between the
// control context and the render context.
package param

import (
	"math"
	"sync/atomic"
)

// Handle is a named, range-clamped scalar cell shared across threads.
//
// The control context calls Set at arbitrary cadence; the render context
// reads the cell once per block through a graph parameter-reader node.
// Writes are last-write-wins with no interpolation. Every clone of a graph
// that references the handle observes the same cell, so a Handle is the
// only state shared across the control/render boundary.
type Handle struct {
	Name string
	Min  float64
	Max  float64

	// Value stored as float64 bits for atomic access from the audio thread.
	bits atomic.Uint64
}

// New creates a handle with the given range and stores the initial value,
// clamped to [min, max].
func New(name string, initial, min, max float64) *Handle {
	h := &Handle{Name: name, Min: min, Max: max}
	h.Set(initial)
	return h
}

// Set clamps value to [Min, Max] and stores it atomically. Out-of-range
// values are not an error; they are silently clamped.
func (h *Handle) Set(value float64) {
	if value < h.Min {
		value = h.Min
	} else if value > h.Max {
		value = h.Max
	}
	h.bits.Store(math.Float64bits(value))
}

// Get returns the most recently stored value. It never blocks and is safe
// to call from the render context every block.
func (h *Handle) Get() float64 {
	return math.Float64frombits(h.bits.Load())
}
