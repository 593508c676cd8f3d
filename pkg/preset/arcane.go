package preset

import (
	"math"

	"github.com/justyntemme/procaudio/pkg/dsp/envelope"
	"github.com/justyntemme/procaudio/pkg/dsp/oscillator"
	"github.com/justyntemme/procaudio/pkg/graph"
)

// ArcaneAttack is a one-shot magic attack, ~0.7s. Five layers: a
// shimmering detuned sine cluster, crystalline sparkle, a rising frequency
// sweep with vibrato, an ethereal noise wash, and a bell-like inharmonic
// partial cluster.
type ArcaneAttack struct {
	Intensity  float64
	PitchShift float64
	ReverbMix  float64
	// Lowpass is a cutoff in Hz applied to the whole output;
	// 20000 is effectively transparent.
	Lowpass float64
}

// DefaultArcaneAttack returns the reference parameter set.
func DefaultArcaneAttack() ArcaneAttack {
	return ArcaneAttack{Intensity: 0.8, PitchShift: 1.0, ReverbMix: 0.3, Lowpass: 20000.0}
}

// detuneCents is the ratio for a 5 cent detune, 2^(5/1200).
const detuneCents = 1.002893

// BuildArcaneAttack constructs the arcane attack graph.
func BuildArcaneAttack(aa ArcaneAttack) *graph.Net {
	in := aa.Intensity
	pitch := aa.PitchShift

	n := graph.NewNet(0, 2)

	// Layer 1: shimmer core, six detuned sines in two clusters around
	// 880 and 1320 Hz with +/-5 cent spread.
	baseA := 880.0 * pitch
	baseB := 1320.0 * pitch
	shimmerBank := sineBank(n, []float64{
		baseA, baseA * detuneCents, baseA / detuneCents,
		baseB, baseB * detuneCents, baseB / detuneCents,
	}, nil)
	shimmerScaled := mulLayer(n, shimmerBank, n.Push(graph.NewConst(1.0/6.0)))
	shimmer := mulLayer(n, shimmerScaled,
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 0.55 {
				return 0
			}
			return envelope.AttackDecay(t, 40, 5.5) * 0.15 * in
		})))

	// Layer 2: crystalline sparkle, band-passed noise with granular
	// stuttering.
	sparkle := mulLayer(n, bandNoise(n, 6000.0*pitch, 2.0),
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 0.6 {
				return 0
			}
			return envelope.AttackDecay(t, 80, 4.5) *
				envelope.Stutter2(t, 73.0, 113.0) * 0.25 * in
		})))

	// Layer 3: rising sweep 300 to 1800 Hz over 0.45s, with a small sine
	// vibrato as FM on top.
	sweepLo := 300.0 * pitch
	sweepHi := 1800.0 * pitch
	sweepFreq := n.Push(graph.NewEnv(func(t float64) float64 {
		if t > 0.45 {
			return 0
		}
		return sweepLo + (sweepHi-sweepLo)*(t/0.45)
	}))
	vib := n.Push(graph.NewOsc(oscillator.ShapeSine, 7.0*pitch))
	vibDepth := mulLayer(n, vib, n.Push(graph.NewConst(30.0*pitch)))
	sweepDrive := sumLayers(n, sweepFreq, vibDepth)
	sweepOsc := n.Push(graph.NewOsc(oscillator.ShapeSine, 0))
	n.Connect(sweepDrive, 0, sweepOsc, 0)
	sweep := mulLayer(n, sweepOsc,
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 0.45 {
				return 0
			}
			attack := math.Min(t*30.0, 1.0)
			release := t - 0.35
			if release < 0 {
				release = 0
			}
			return attack * envelope.Decay(release, 20.0) * 0.12 * in
		})))

	// Layer 4: ethereal wash, noise through a lowpole whose cutoff opens
	// and closes on a bell curve between 200 and 1200 Hz.
	washLo := 200.0 * pitch
	washHi := 1200.0 * pitch
	waSrc := n.Push(graph.NewNoise())
	waLP := n.Push(graph.NewLowPole(0))
	waCutoff := n.Push(graph.NewEnv(func(t float64) float64 {
		if t > 0.6 {
			return washLo
		}
		x := t / 0.6
		curve := math.Exp(-(x - 0.4) * (x - 0.4) * 12.0)
		return washLo + (washHi-washLo)*curve
	}))
	n.Connect(waSrc, 0, waLP, 0)
	n.Connect(waCutoff, 0, waLP, 1)
	wash := mulLayer(n, waLP,
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 0.6 {
				return 0
			}
			return envelope.AttackDecay(t, 20, 3.5) * 0.30 * in
		})))

	// Layer 5: harmonic cluster, bell-like inharmonic partials.
	clusterBank := sineBank(n,
		[]float64{1320.0 * pitch, 1720.0 * pitch, 2150.0 * pitch, 2680.0 * pitch, 3200.0 * pitch},
		[]float64{1.0, 0.8, 0.6, 0.4, 0.2})
	clusterScaled := mulLayer(n, clusterBank, n.Push(graph.NewConst(1.0/3.0)))
	cluster := mulLayer(n, clusterScaled,
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 0.4 {
				return 0
			}
			return envelope.AttackDecay(t, 120, 8.0) * 0.08 * in
		})))

	mono := sumLayers(n, shimmer, sparkle, sweep, wash, cluster)

	// Two-pole output lowpass for a steeper roll-off.
	out1 := n.Push(graph.NewLowPole(aa.Lowpass))
	out2 := n.Push(graph.NewLowPole(aa.Lowpass))
	n.Connect(mono, 0, out1, 0)
	n.Connect(out1, 0, out2, 0)

	finishStereo(n, out2, reverbSpec{room: 0.5, decay: 1.0, damp: 0.7}, aa.ReverbMix)
	return n
}
