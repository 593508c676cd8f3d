package filter

import "math"

// Moog implements a four-stage ladder lowpass filter with resonance
// feedback (Stilson/Smith topology). Resonance is expressed as Q in
// roughly [0.1, 10]; self-oscillation starts near the top of the range.
type Moog struct {
	sampleRate float64
	cutoff     float64
	resonance  float64

	g float64 // per-stage gain
	k float64 // feedback amount

	s [4]float64 // stage states
}

// NewMoog creates a new ladder filter
func NewMoog(sampleRate, cutoff, resonance float64) *Moog {
	m := &Moog{sampleRate: sampleRate}
	m.SetParams(cutoff, resonance)
	return m
}

// SetSampleRate sets the sample rate and forces a coefficient recompute
func (m *Moog) SetSampleRate(rate float64) {
	m.sampleRate = rate
	cutoff, res := m.cutoff, m.resonance
	m.cutoff = 0
	m.SetParams(cutoff, res)
}

// SetParams retunes cutoff (Hz) and resonance (Q). No-op when unchanged.
func (m *Moog) SetParams(cutoff, resonance float64) {
	if cutoff == m.cutoff && resonance == m.resonance {
		return
	}
	if cutoff < 1 {
		cutoff = 1
	}
	nyquist := m.sampleRate * 0.5
	if cutoff > nyquist*0.99 {
		cutoff = nyquist * 0.99
	}
	if resonance < 0 {
		resonance = 0
	}
	m.cutoff = cutoff
	m.resonance = resonance

	fc := cutoff / m.sampleRate
	m.g = 1.0 - math.Exp(-2.0*math.Pi*fc)
	// Map Q ~[0.1,10] onto feedback [0,4); keep below 4 to stay stable.
	m.k = 4.0 * (resonance / 10.0)
	if m.k > 3.96 {
		m.k = 3.96
	}
}

// Next filters a single sample
func (m *Moog) Next(input float32) float32 {
	in := float64(input) - m.k*m.s[3]
	m.s[0] += m.g * (math.Tanh(in) - m.s[0])
	m.s[1] += m.g * (m.s[0] - m.s[1])
	m.s[2] += m.g * (m.s[1] - m.s[2])
	m.s[3] += m.g * (m.s[2] - m.s[3])
	return float32(m.s[3])
}

// Process filters a buffer in place - no allocations
func (m *Moog) Process(buffer []float32) {
	for i := range buffer {
		buffer[i] = m.Next(buffer[i])
	}
}

// Reset clears the filter state
func (m *Moog) Reset() {
	m.s = [4]float64{}
}
