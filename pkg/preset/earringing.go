package preset

import (
	"math"

	"github.com/justyntemme/procaudio/pkg/graph"
	"github.com/justyntemme/procaudio/pkg/param"
)

// EarRinging is a continuous tinnitus effect: three closely-detuned pairs
// of high sine tones whose beating interference rings, modulated by slow
// throb and flutter cycles, with the stereo image circling the head on an
// ~8 second rotation.
type EarRinging struct {
	Intensity float64
}

// DefaultEarRinging returns the reference parameter set.
func DefaultEarRinging() EarRinging {
	return EarRinging{Intensity: 0.3}
}

// EarRingingParams are the live handles for a running instance.
type EarRingingParams struct {
	Intensity *param.Handle
}

// BuildEarRinging constructs the ear ringing graph and its live handles.
func BuildEarRinging(er EarRinging) (*graph.Net, *EarRingingParams) {
	intensity := param.New("intensity", er.Intensity, 0.0, 1.0)

	n := graph.NewNet(0, 2)

	// Audio-rate tones: 4000/4015, 5200/5230, 6800/6790 Hz.
	tones := sineBank(n, []float64{4000, 4015, 5200, 5230, 6800, 6790}, nil)
	scaled := mulLayer(n, tones, n.Push(graph.NewConst(1.0/6.0)))
	leveled := mulLayer(n, scaled, n.Push(graph.NewVar(intensity)))

	// Slow throb times faster flutter.
	ampMod := n.Push(graph.NewEnv(func(t float64) float64 {
		throb := 0.55 + 0.45*math.Sin(tau*0.14*t)
		flutter := 0.8 + 0.2*math.Sin(tau*0.7*t)
		return throb * flutter
	}))
	modulated := mulLayer(n, leveled, ampMod)

	split := n.Push(graph.NewSplit())
	n.Connect(modulated, 0, split, 0)

	// Per-channel pan gains in [0.3, 1.0]; cos^2/sin^2 of the same angle
	// keeps the rotation complementary.
	leftGain := n.Push(graph.NewEnv(func(t float64) float64 {
		c := math.Cos(tau * 0.12 * t)
		return 0.3 + 0.7*c*c
	}))
	rightGain := n.Push(graph.NewEnv(func(t float64) float64 {
		s := math.Sin(tau * 0.12 * t)
		return 0.3 + 0.7*s*s
	}))

	left := n.Push(graph.NewMul())
	n.Connect(split, 0, left, 0)
	n.Connect(leftGain, 0, left, 1)
	right := n.Push(graph.NewMul())
	n.Connect(split, 1, right, 0)
	n.Connect(rightGain, 0, right, 1)

	n.ConnectOutput(left, 0, 0)
	n.ConnectOutput(right, 0, 1)

	return n, &EarRingingParams{Intensity: intensity}
}
