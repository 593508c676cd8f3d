// Package reverb provides the stereo reverb used for wet/dry ambience.
package reverb

import "math"

// CombFilter implements a damped feedback comb filter, the parallel
// building block of the reverb tank.
type CombFilter struct {
	buffer      []float32
	bufferIdx   int
	feedback    float64
	filterstore float64
	damp1       float64
	damp2       float64
}

// NewCombFilter creates a comb filter with the given delay in samples
func NewCombFilter(delaySamples int) *CombFilter {
	if delaySamples < 1 {
		delaySamples = 1
	}
	return &CombFilter{
		buffer: make([]float32, delaySamples),
		damp1:  0.5,
		damp2:  0.5,
	}
}

// Delay returns the delay length in samples
func (c *CombFilter) Delay() int {
	return len(c.buffer)
}

// SetFeedback sets the feedback amount (0-1)
func (c *CombFilter) SetFeedback(feedback float64) {
	c.feedback = math.Max(0.0, math.Min(0.999, feedback))
}

// SetDamping sets the damping amount (0-1); damping low-passes the tail
func (c *CombFilter) SetDamping(damping float64) {
	c.damp1 = damping
	c.damp2 = 1.0 - damping
}

// Process processes a single sample through the comb filter
func (c *CombFilter) Process(input float32) float32 {
	output := c.buffer[c.bufferIdx]

	c.filterstore = float64(output)*c.damp2 + c.filterstore*c.damp1
	c.buffer[c.bufferIdx] = input + float32(c.feedback*c.filterstore)

	c.bufferIdx++
	if c.bufferIdx >= len(c.buffer) {
		c.bufferIdx = 0
	}

	return output
}

// Reset clears the comb filter state
func (c *CombFilter) Reset() {
	for i := range c.buffer {
		c.buffer[i] = 0
	}
	c.bufferIdx = 0
	c.filterstore = 0
}

// AllPassFilter implements an all-pass filter for diffusion
type AllPassFilter struct {
	buffer    []float32
	bufferIdx int
	feedback  float64
}

// NewAllPassFilter creates an all-pass filter with the given delay in samples
func NewAllPassFilter(delaySamples int) *AllPassFilter {
	if delaySamples < 1 {
		delaySamples = 1
	}
	return &AllPassFilter{
		buffer:   make([]float32, delaySamples),
		feedback: 0.5,
	}
}

// Process processes a single sample through the all-pass filter
func (a *AllPassFilter) Process(input float32) float32 {
	bufout := a.buffer[a.bufferIdx]

	output := -input + bufout
	a.buffer[a.bufferIdx] = input + float32(a.feedback)*bufout

	a.bufferIdx++
	if a.bufferIdx >= len(a.buffer) {
		a.bufferIdx = 0
	}

	return output
}

// Reset clears the all-pass filter state
func (a *AllPassFilter) Reset() {
	for i := range a.buffer {
		a.buffer[i] = 0
	}
	a.bufferIdx = 0
}
