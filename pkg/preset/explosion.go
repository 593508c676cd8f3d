package preset

import (
	"math"

	"github.com/justyntemme/procaudio/pkg/dsp/envelope"
	"github.com/justyntemme/procaudio/pkg/dsp/oscillator"
	"github.com/justyntemme/procaudio/pkg/graph"
)

// Explosion is a one-shot detonation/fireball, ~2-3.5s depending on pitch.
// Six layers: broadband blast, tonal boom, sub rumble, mid body, a
// pitch-swept fireball whoosh, and a crackle tail. Decay speed scales with
// sqrt(pitch): higher pitch reads as a small fast fireball, lower pitch as
// a massive slow detonation.
type Explosion struct {
	Intensity  float64
	PitchShift float64
	ReverbMix  float64
	// Lowpass is a cutoff in Hz applied to the whole output;
	// 20000 is effectively transparent.
	Lowpass float64
}

// DefaultExplosion returns the reference parameter set.
func DefaultExplosion() Explosion {
	return Explosion{Intensity: 0.8, PitchShift: 1.0, ReverbMix: 0.1, Lowpass: 20000.0}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// BuildExplosion constructs the explosion graph.
func BuildExplosion(ex Explosion) *graph.Net {
	in := ex.Intensity
	pitch := ex.PitchShift
	decayScale := math.Sqrt(pitch)

	n := graph.NewNet(0, 2)

	// Layer 1: initial blast, lowpassed noise burst.
	blSrc := n.Push(graph.NewNoise())
	blLP := n.Push(graph.NewLowPole(3000.0 * pitch))
	n.Connect(blSrc, 0, blLP, 0)
	blast := mulLayer(n, blLP,
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 0.2/decayScale {
				return 0
			}
			return envelope.AttackDecay(t, 5000, 18*decayScale) * 0.2 * in
		})))

	// Layer 2: tonal boom, a low sine pair as the pitch cue under the noise.
	boomHarm := n.Push(graph.NewOsc(oscillator.ShapeSine, 130.0*pitch))
	boomHalf := mulLayer(n, boomHarm, n.Push(graph.NewConst(0.5)))
	boomSrc := sumLayers(n,
		n.Push(graph.NewOsc(oscillator.ShapeSine, 80.0*pitch)),
		boomHalf)
	boom := mulLayer(n, boomSrc,
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 2.5/decayScale {
				return 0
			}
			return envelope.AttackDecay(t, 60, 1.5*decayScale) * 0.12 * in
		})))

	// Layer 3: sub rumble, noise through two cascaded lowpoles.
	rumbleCutoff := 250.0 * pitch
	ruSrc := n.Push(graph.NewNoise())
	ru1 := n.Push(graph.NewLowPole(rumbleCutoff))
	ru2 := n.Push(graph.NewLowPole(rumbleCutoff))
	n.Connect(ruSrc, 0, ru1, 0)
	n.Connect(ru1, 0, ru2, 0)
	rumble := mulLayer(n, ru2,
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 3.0/decayScale {
				return 0
			}
			return envelope.AttackDecay(t, 80, 1.0*decayScale) * 0.6 * in
		})))

	// Layer 4: mid body.
	mSrc := n.Push(graph.NewNoise())
	mLP := n.Push(graph.NewLowPole(800.0 * pitch))
	n.Connect(mSrc, 0, mLP, 0)
	mid := mulLayer(n, mLP,
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 1.5/decayScale {
				return 0
			}
			return envelope.AttackDecay(t, 150, 2.5*decayScale) * 0.4 * in
		})))

	// Layer 5: fireball whoosh, noise swept from 4 kHz down to 200 Hz.
	whooshHi := 4000.0 * pitch
	whooshLo := 200.0 * pitch
	wSrc := n.Push(graph.NewNoise())
	wLP := n.Push(graph.NewLowPole(0))
	wCutoff := n.Push(graph.NewEnv(func(t float64) float64 {
		return whooshLo + (whooshHi-whooshLo)*envelope.Decay(t, 3.0*decayScale)
	}))
	n.Connect(wSrc, 0, wLP, 0)
	n.Connect(wCutoff, 0, wLP, 1)
	whoosh := mulLayer(n, wLP,
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 1.5/decayScale {
				return 0
			}
			onset := clamp01((t - 0.02) * 60.0)
			return onset * envelope.Decay(t, 2.0*decayScale) * 0.35 * in
		})))

	// Layer 6: crackle tail for debris and sparks.
	crackle := mulLayer(n, bandNoise(n, 5000.0*pitch, 1.5),
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 1.8/decayScale {
				return 0
			}
			onset := clamp01((t - 0.05) * 20.0)
			return onset * envelope.Stutter2(t, 97.3, 143.7) *
				envelope.Decay(t, 2.0*decayScale) * 0.04 * in
		})))

	mono := sumLayers(n, blast, boom, rumble, mid, whoosh, crackle)

	// Two-pole output lowpass for a steeper roll-off.
	out1 := n.Push(graph.NewLowPole(ex.Lowpass))
	out2 := n.Push(graph.NewLowPole(ex.Lowpass))
	n.Connect(mono, 0, out1, 0)
	n.Connect(out1, 0, out2, 0)

	finishStereo(n, out2, reverbSpec{room: 0.6, decay: 1.5, damp: 0.5}, ex.ReverbMix)
	return n
}
