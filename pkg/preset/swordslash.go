package preset

import (
	"github.com/justyntemme/procaudio/pkg/dsp/envelope"
	"github.com/justyntemme/procaudio/pkg/dsp/oscillator"
	"github.com/justyntemme/procaudio/pkg/graph"
)

// SwordSlash is a one-shot metal blade impact built from FM synthesis.
// High modulation indices give a dense inharmonic spectrum; as the index
// decays the sidebands vanish from the outside in, which is the "shiiing"
// character. A shaped noise layer supplies the broadband transient.
type SwordSlash struct {
	// Intensity scales every layer's gain (0.0-1.0).
	Intensity float64
	// PitchShift multiplies every frequency constant (1.0 = normal).
	PitchShift float64
	// ReverbMix blends in a cave-like ambience (0.0 = dry, 1.0 = wet).
	ReverbMix float64
}

// DefaultSwordSlash returns the reference parameter set.
func DefaultSwordSlash() SwordSlash {
	return SwordSlash{Intensity: 0.8, PitchShift: 1.0, ReverbMix: 0.0}
}

// fmVoice wires one FM pair: a sine carrier whose frequency input is
// deviated by a sine modulator scaled by a decaying index envelope.
func fmVoice(n *graph.Net, carrierHz, modHz float64, index func(t float64) float64) int {
	mod := n.Push(graph.NewOsc(oscillator.ShapeSine, modHz))
	idx := n.Push(graph.NewEnv(index))
	dev := mulLayer(n, mod, idx)
	carrier := n.Push(graph.NewOsc(oscillator.ShapeSine, carrierHz))
	n.Connect(dev, 0, carrier, 0)
	return carrier
}

// BuildSwordSlash constructs the sword slash graph. One-shot; silent after
// 1.2 seconds of local time.
func BuildSwordSlash(ss SwordSlash) *graph.Net {
	in := ss.Intensity
	pitch := ss.PitchShift

	n := graph.NewNet(0, 2)

	// Voice 1: low metallic body. Carrier 720, modulator 487 (inharmonic
	// ratio ~1.48), index 20 decaying slower than the amplitude.
	v1Mod := 487.0 * pitch
	v1 := mulLayer(n,
		fmVoice(n, 720.0*pitch, v1Mod, func(t float64) float64 {
			return 20.0 * v1Mod * envelope.Decay(t, 3.0)
		}),
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 1.2 {
				return 0
			}
			return envelope.AttackDecay(t, 500, 6) * 0.02 * in
		})))

	// Voice 2: mid presence, carrier 2100 / modulator 1430.
	v2Mod := 1430.0 * pitch
	v2 := mulLayer(n,
		fmVoice(n, 2100.0*pitch, v2Mod, func(t float64) float64 {
			return 18.0 * v2Mod * envelope.Decay(t, 5.0)
		}),
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 0.6 {
				return 0
			}
			return envelope.AttackDecay(t, 500, 10) * 0.015 * in
		})))

	// Voice 3: high shimmer, carrier 4200 / modulator 2870.
	v3Mod := 2870.0 * pitch
	v3 := mulLayer(n,
		fmVoice(n, 4200.0*pitch, v3Mod, func(t float64) float64 {
			return 12.0 * v3Mod * envelope.Decay(t, 8.0)
		}),
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 0.3 {
				return 0
			}
			return envelope.AttackDecay(t, 500, 15) * 0.008 * in
		})))

	// Noise layer: broadband transient through a closing lowpass, cutoff
	// sweeping 10 kHz down to 300 Hz for the "whoosh".
	noiseBase := 300.0 * pitch
	noiseRange := 9700.0 * pitch
	src := n.Push(graph.NewNoise())
	lp := n.Push(graph.NewLowPole(0))
	cutoff := n.Push(graph.NewEnv(func(t float64) float64 {
		return noiseBase + noiseRange*envelope.Decay(t, 8.0)
	}))
	n.Connect(src, 0, lp, 0)
	n.Connect(cutoff, 0, lp, 1)
	noiseLayer := mulLayer(n, lp,
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 0.5 {
				return 0
			}
			return envelope.AttackDecay(t, 1000, 10) * 0.07 * in
		})))

	mono := sumLayers(n, v1, v2, v3, noiseLayer)
	finishStereo(n, mono, reverbSpec{room: 0.3, decay: 0.6, damp: 0.4}, ss.ReverbMix)
	return n
}
