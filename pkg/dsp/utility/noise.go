// Package utility provides common DSP utility functions and processors.
package utility

// Noise generates white noise from a 64-bit linear congruential generator.
//
// The sequence is a pure function of the seed: two generators created with
// the same seed emit bit-identical samples. Playback clones rely on this to
// reproduce identical output, so no global randomness is ever consulted.
type Noise struct {
	seed  uint64
	state uint64
}

// DefaultNoiseSeed seeds noise nodes that do not request a specific stream.
const DefaultNoiseSeed uint64 = 0x9E3779B97F4A7C15

// NewNoise creates a noise generator with the given seed.
func NewNoise(seed uint64) *Noise {
	return &Noise{seed: seed, state: seed}
}

// Next returns the next sample in [-1, 1).
func (n *Noise) Next() float32 {
	n.state = n.state*6364136223846793005 + 1442695040888963407
	// Use the top 24 bits; the low bits of an LCG are weak.
	return float32(n.state>>40)/float32(1<<23) - 1.0
}

// Process fills buffer with noise - no allocations
func (n *Noise) Process(buffer []float32) {
	for i := range buffer {
		buffer[i] = n.Next()
	}
}

// Reset rewinds the generator to the start of its sequence.
func (n *Noise) Reset() {
	n.state = n.seed
}

// Seed returns the seed this generator was created with.
func (n *Noise) Seed() uint64 {
	return n.seed
}
