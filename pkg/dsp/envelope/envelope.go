// Package envelope provides envelope generators for audio synthesis
package envelope

import "math"

// The preset sound designs shape every layer with pure functions of local
// elapsed time. These helpers are the shared vocabulary: an attack/decay
// curve, and the chaotic stutter gate used for crackle and sizzle layers.
// All of them are deterministic; identical inputs give identical outputs.

const tau = 2.0 * math.Pi

// AttackDecay returns a linear attack ramp (reaching 1 at 1/attackRate
// seconds) multiplied by an exponential decay exp(-decayRate*t).
// Negative t returns 0.
func AttackDecay(t, attackRate, decayRate float64) float64 {
	if t < 0 {
		return 0
	}
	attack := t * attackRate
	if attack > 1 {
		attack = 1
	}
	return attack * math.Exp(-decayRate*t)
}

// Decay returns exp(-rate*t), 0 for negative t.
func Decay(t, rate float64) float64 {
	if t < 0 {
		return 0
	}
	return math.Exp(-rate * t)
}

// Stutter2 gates with the half-wave-rectified product of two sines at
// mutually non-harmonic rates (Hz). The product crosses zero erratically,
// which reads as pseudo-random arcing without any randomness.
func Stutter2(t, rate1, rate2 float64) float64 {
	p := math.Sin(tau*rate1*t) * math.Sin(tau*rate2*t)
	if p < 0 {
		return 0
	}
	return p
}

// Stutter3 is Stutter2 with a third sine factor for sparser, spikier gating.
func Stutter3(t, rate1, rate2, rate3 float64) float64 {
	p := math.Sin(tau*rate1*t) * math.Sin(tau*rate2*t) * math.Sin(tau*rate3*t)
	if p < 0 {
		return 0
	}
	return p
}
