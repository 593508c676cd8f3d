package preset

import (
	"github.com/justyntemme/procaudio/pkg/dsp/envelope"
	"github.com/justyntemme/procaudio/pkg/dsp/oscillator"
	"github.com/justyntemme/procaudio/pkg/graph"
)

// BluntImpact is a one-shot mace/hammer/club hit. Three layers: an impact
// crack, a low body thud, and a metallic weapon clang. Silent after ~0.2s.
type BluntImpact struct {
	Intensity  float64
	PitchShift float64
	ReverbMix  float64
}

// DefaultBluntImpact returns the reference parameter set.
func DefaultBluntImpact() BluntImpact {
	return BluntImpact{Intensity: 0.8, PitchShift: 1.0, ReverbMix: 0.0}
}

// sineBank sums fixed sine partials with per-partial gain.
func sineBank(n *graph.Net, freqs []float64, gains []float64) int {
	ids := make([]int, len(freqs))
	for i, f := range freqs {
		osc := n.Push(graph.NewOsc(oscillator.ShapeSine, f))
		if gains != nil && gains[i] != 1.0 {
			g := n.Push(graph.NewConst(gains[i]))
			osc = mulLayer(n, osc, g)
		}
		ids[i] = osc
	}
	if len(ids) == 1 {
		return ids[0]
	}
	return sumLayers(n, ids...)
}

// BuildBluntImpact constructs the blunt impact graph.
func BuildBluntImpact(bi BluntImpact) *graph.Net {
	in := bi.Intensity
	pitch := bi.PitchShift

	n := graph.NewNet(0, 2)

	// Layer 1: impact crack, a punchy lowpassed noise burst.
	src := n.Push(graph.NewNoise())
	lp := n.Push(graph.NewLowPole(5000.0 * pitch))
	n.Connect(src, 0, lp, 0)
	crack := mulLayer(n, lp,
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 0.1 {
				return 0
			}
			return envelope.AttackDecay(t, 500, 35) * 0.5 * in
		})))

	// Layer 2: body thud, a low sine pair for weight.
	thud := mulLayer(n,
		sineBank(n, []float64{45.0 * pitch, 90.0 * pitch}, nil),
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 0.15 {
				return 0
			}
			return envelope.AttackDecay(t, 200, 20) * 0.35 * in
		})))

	// Layer 3: weapon clang, an inharmonic sine cluster.
	clang := mulLayer(n,
		sineBank(n, []float64{780.0 * pitch, 1850.0 * pitch, 3100.0 * pitch, 4700.0 * pitch}, nil),
		n.Push(graph.NewEnv(func(t float64) float64 {
			if t > 0.2 {
				return 0
			}
			return envelope.AttackDecay(t, 500, 18) * 0.08 * in
		})))

	mono := sumLayers(n, crack, thud, clang)
	finishStereo(n, mono, reverbSpec{room: 0.4, decay: 0.8, damp: 0.5}, bi.ReverbMix)
	return n
}
