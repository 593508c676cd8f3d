package filter

import "math"

// OnePole implements a first-order filter with a 6 dB/octave slope.
// Cheap enough to retune every sample, which the swept-cutoff layers
// (whoosh, wash) depend on.
type OnePole struct {
	sampleRate float64
	cutoff     float64
	coeff      float64
	state      float64
	highpass   bool
}

// NewLowPole creates a one-pole lowpass filter
func NewLowPole(sampleRate, cutoff float64) *OnePole {
	p := &OnePole{sampleRate: sampleRate, highpass: false}
	p.SetCutoff(cutoff)
	return p
}

// NewHighPole creates a one-pole highpass filter
func NewHighPole(sampleRate, cutoff float64) *OnePole {
	p := &OnePole{sampleRate: sampleRate, highpass: true}
	p.SetCutoff(cutoff)
	return p
}

// SetSampleRate sets the sample rate and recomputes the coefficient
func (p *OnePole) SetSampleRate(rate float64) {
	p.sampleRate = rate
	p.cutoff = 0 // force recompute on next SetCutoff
}

// SetCutoff sets the cutoff frequency in Hz. No-op when unchanged, so
// per-sample retuning with a constant cutoff costs one comparison.
func (p *OnePole) SetCutoff(cutoff float64) {
	if cutoff == p.cutoff {
		return
	}
	if cutoff < 0 {
		cutoff = 0
	}
	p.cutoff = cutoff
	p.coeff = 1.0 - math.Exp(-2.0*math.Pi*cutoff/p.sampleRate)
	if p.coeff > 1.0 {
		p.coeff = 1.0
	}
}

// Next filters a single sample
func (p *OnePole) Next(input float32) float32 {
	p.state += p.coeff * (float64(input) - p.state)
	if p.highpass {
		return input - float32(p.state)
	}
	return float32(p.state)
}

// Process filters a buffer in place - no allocations
func (p *OnePole) Process(buffer []float32) {
	for i := range buffer {
		buffer[i] = p.Next(buffer[i])
	}
}

// Reset clears the filter state
func (p *OnePole) Reset() {
	p.state = 0
}
