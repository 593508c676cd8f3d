// Package distortion provides waveshaping distortion.
package distortion

import (
	"math"
)

// Waveshaper applies deterministic saturating waveshaping:
//
//	out = in*(1-mix) + tanh(in*drive)*mix
//
// It is stateless, so a single instance can be shared across blocks and
// cloning a graph needs no special handling beyond copying the settings.
type Waveshaper struct {
	drive float64
	mix   float64
}

// NewWaveshaper creates a waveshaper with the given drive and mix
func NewWaveshaper(drive, mix float64) *Waveshaper {
	w := &Waveshaper{}
	w.SetDrive(drive)
	w.SetMix(mix)
	return w
}

// SetDrive sets the saturation amount (1.0 = nearly clean, higher = harder)
func (w *Waveshaper) SetDrive(drive float64) {
	w.drive = math.Max(0.0, drive)
}

// SetMix sets the dry/wet mix (0.0 = dry, 1.0 = fully shaped)
func (w *Waveshaper) SetMix(mix float64) {
	w.mix = math.Max(0.0, math.Min(1.0, mix))
}

// Drive returns the current drive amount
func (w *Waveshaper) Drive() float64 { return w.drive }

// Mix returns the current dry/wet mix
func (w *Waveshaper) Mix() float64 { return w.mix }

// Next shapes a single sample
func (w *Waveshaper) Next(input float32) float32 {
	x := float64(input)
	shaped := math.Tanh(x * w.drive)
	return float32(x*(1.0-w.mix) + shaped*w.mix)
}

// Process shapes a buffer in place - no allocations
func (w *Waveshaper) Process(buffer []float32) {
	for i := range buffer {
		buffer[i] = w.Next(buffer[i])
	}
}
