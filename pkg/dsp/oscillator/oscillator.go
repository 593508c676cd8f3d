// Package oscillator provides audio oscillators for synthesis
package oscillator

import "math"

// Shape selects the waveform an Oscillator produces.
type Shape int

const (
	// ShapeSine produces a sine wave
	ShapeSine Shape = iota
	// ShapeSaw produces a rising sawtooth wave
	ShapeSaw
	// ShapeSquare produces a square wave
	ShapeSquare
	// ShapeTriangle produces a triangle wave
	ShapeTriangle
)

// Oscillator generates periodic waveforms with a phase accumulator.
// Frequency may be fixed or supplied per sample (for FM and sweeps).
type Oscillator struct {
	shape      Shape
	sampleRate float64
	frequency  float64
	phase      float64
	phaseInc   float64
}

// New creates a new oscillator
func New(shape Shape, sampleRate float64) *Oscillator {
	return &Oscillator{
		shape:      shape,
		sampleRate: sampleRate,
		frequency:  440.0,
		phaseInc:   440.0 / sampleRate,
	}
}

// SetSampleRate sets the sample rate in Hz
func (o *Oscillator) SetSampleRate(rate float64) {
	o.sampleRate = rate
	o.phaseInc = o.frequency / rate
}

// SetFrequency sets the oscillator frequency
func (o *Oscillator) SetFrequency(freq float64) {
	o.frequency = freq
	o.phaseInc = freq / o.sampleRate
}

// SetPhase sets the oscillator phase (0-1)
func (o *Oscillator) SetPhase(phase float64) {
	o.phase = phase - math.Floor(phase)
}

// Reset resets the oscillator phase to 0
func (o *Oscillator) Reset() {
	o.phase = 0.0
}

// Next generates one sample at the configured frequency.
func (o *Oscillator) Next() float32 {
	sample := o.sampleAt(o.phase)
	o.phase += o.phaseInc
	if o.phase >= 1.0 {
		o.phase -= math.Floor(o.phase)
	}
	return sample
}

// NextAt generates one sample, advancing the phase at the given frequency.
// Negative frequencies run the phase backwards.
func (o *Oscillator) NextAt(freq float64) float32 {
	sample := o.sampleAt(o.phase)
	o.phase += freq / o.sampleRate
	o.phase -= math.Floor(o.phase)
	return sample
}

// Process fills buffer at the configured frequency - no allocations
func (o *Oscillator) Process(buffer []float32) {
	for i := range buffer {
		buffer[i] = o.Next()
	}
}

func (o *Oscillator) sampleAt(phase float64) float32 {
	switch o.shape {
	case ShapeSaw:
		return float32(2.0*phase - 1.0)
	case ShapeSquare:
		if phase < 0.5 {
			return 1.0
		}
		return -1.0
	case ShapeTriangle:
		if phase < 0.5 {
			return float32(4.0*phase - 1.0)
		}
		return float32(3.0 - 4.0*phase)
	default:
		return float32(math.Sin(2.0 * math.Pi * phase))
	}
}
