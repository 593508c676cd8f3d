package preset

import (
	"github.com/justyntemme/procaudio/pkg/dsp/envelope"
	"github.com/justyntemme/procaudio/pkg/graph"
)

// LightningZap is a one-shot electrical arc discharge, ~0.5s. Three bands
// of noise gated by chaotic stutter envelopes: the product of sines at
// mutually non-harmonic rates crosses zero erratically, which reads as the
// arc making and breaking contact without any randomness.
type LightningZap struct {
	Intensity  float64
	PitchShift float64
	ReverbMix  float64
}

// DefaultLightningZap returns the reference parameter set.
func DefaultLightningZap() LightningZap {
	return LightningZap{Intensity: 0.8, PitchShift: 1.0, ReverbMix: 0.0}
}

// bandNoise wires white noise through a fixed band-pass.
func bandNoise(n *graph.Net, centerHz, q float64) int {
	src := n.Push(graph.NewNoise())
	bp := n.Push(graph.NewBandPass(centerHz, q))
	n.Connect(src, 0, bp, 0)
	return bp
}

// BuildLightningZap constructs the zap graph.
func BuildLightningZap(z LightningZap) *graph.Net {
	in := z.Intensity
	pitch := z.PitchShift

	n := graph.NewNet(0, 2)

	// Layer 1: core zap, wide band-passed noise around 5 kHz.
	zap := mulLayer(n, bandNoise(n, 5000.0*pitch, 1.5),
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 0.55 {
				return 0
			}
			return envelope.Stutter3(t, 127.3, 89.7, 211.1) *
				envelope.Decay(t, 3.5) * 0.65 * in
		})))

	// Layer 2: high sizzle for brightness and air.
	sizzle := mulLayer(n, bandNoise(n, 7000.0*pitch, 1.0),
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 0.5 {
				return 0
			}
			return envelope.Stutter2(t, 173.9, 67.3) *
				envelope.Decay(t, 4.0) * 0.4 * in
		})))

	// Layer 3: mid crackle filling the 2-5 kHz range.
	mid := mulLayer(n, bandNoise(n, 3500.0*pitch, 1.5),
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 0.5 {
				return 0
			}
			return envelope.Stutter3(t, 151.7, 103.3, 197.9) *
				envelope.Decay(t, 3.0) * 0.35 * in
		})))

	mono := sumLayers(n, zap, sizzle, mid)
	finishStereo(n, mono, reverbSpec{room: 0.2, decay: 0.4, damp: 0.3}, z.ReverbMix)
	return n
}

// LightningStrike is a one-shot thunder strike, ~2.5s: a bright initial
// crack, a dominant low boom, mid body, and an electrical FM crackle.
type LightningStrike struct {
	Intensity  float64
	PitchShift float64
	ReverbMix  float64
}

// DefaultLightningStrike returns the reference parameter set, including a
// touch of distant-storm reverb.
func DefaultLightningStrike() LightningStrike {
	return LightningStrike{Intensity: 0.8, PitchShift: 1.0, ReverbMix: 0.15}
}

// BuildLightningStrike constructs the strike graph.
func BuildLightningStrike(ls LightningStrike) *graph.Net {
	in := ls.Intensity
	pitch := ls.PitchShift

	n := graph.NewNet(0, 2)

	// Layer 1: initial crack, full-spectrum noise burst.
	crack := mulLayer(n, n.Push(graph.NewNoise()),
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 0.15 {
				return 0
			}
			return envelope.AttackDecay(t, 5000, 20) * 0.5 * in
		})))

	// Layer 2: low boom, noise through two cascaded lowpoles for a steep
	// rolloff. This layer dominates.
	boomCutoff := 80.0 * pitch
	bSrc := n.Push(graph.NewNoise())
	b1 := n.Push(graph.NewLowPole(boomCutoff))
	b2 := n.Push(graph.NewLowPole(boomCutoff))
	n.Connect(bSrc, 0, b1, 0)
	n.Connect(b1, 0, b2, 0)
	boom := mulLayer(n, b2,
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 2.5 {
				return 0
			}
			return envelope.AttackDecay(t, 100, 1.2) * 0.7 * in
		})))

	// Layer 3: mid body between crack and boom.
	mSrc := n.Push(graph.NewNoise())
	mLP := n.Push(graph.NewLowPole(400.0 * pitch))
	n.Connect(mSrc, 0, mLP, 0)
	mid := mulLayer(n, mLP,
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 1.5 {
				return 0
			}
			return envelope.AttackDecay(t, 200, 2.0) * 0.3 * in
		})))

	// Layer 4: electrical crackle, FM chaos on top of the boom.
	cMod := 1270.0 * pitch
	crackle := mulLayer(n,
		fmVoice(n, 1800.0*pitch, cMod, func(t float64) float64 {
			return 30.0 * cMod * envelope.Decay(t, 6.0)
		}),
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 0.8 {
				return 0
			}
			return envelope.AttackDecay(t, 1000, 4) * 0.06 * in
		})))

	mono := sumLayers(n, crack, boom, mid, crackle)
	finishStereo(n, mono, reverbSpec{room: 0.6, decay: 1.5, damp: 0.5}, ls.ReverbMix)
	return n
}
