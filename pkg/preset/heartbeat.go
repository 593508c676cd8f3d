package preset

import (
	"math"

	"github.com/justyntemme/procaudio/pkg/graph"
	"github.com/justyntemme/procaudio/pkg/param"
)

// Heartbeat is a continuous "lub-dub" rhythm. All three fields stay live
// through the returned handles after construction.
type Heartbeat struct {
	// HeartRate in beats per minute (30-220).
	HeartRate float64
	// ArrhythmicStrength adds bounded phase jitter (0 = regular, 1 = chaotic).
	ArrhythmicStrength float64
	// Intensity is the overall volume (0-1).
	Intensity float64
}

// DefaultHeartbeat returns a calm resting rhythm.
func DefaultHeartbeat() Heartbeat {
	return Heartbeat{HeartRate: 72.0, ArrhythmicStrength: 0.0, Intensity: 0.5}
}

// HeartbeatParams are the live handles for a running heartbeat instance.
type HeartbeatParams struct {
	Rate       *param.Handle
	Intensity  *param.Handle
	Arrhythmia *param.Handle
}

const tau = 2.0 * math.Pi

// heartSound is one damped oscillation burst: a 2 ms attack ramp into an
// exponential decay over two harmonics, the upper at 0.4 gain.
func heartSound(localT, freqLo, freqHi, decay float64) float64 {
	if localT < 0 {
		return 0
	}
	attack := math.Min(localT*500.0, 1.0)
	env := attack * math.Exp(-decay*localT)
	lo := math.Sin(tau * freqLo * localT)
	hi := math.Sin(tau*freqHi*localT) * 0.4
	return (lo + hi) * env
}

// BuildHeartbeat constructs the heartbeat graph and its live handles.
//
// Each beat period (60/rate seconds) carries two bursts: S1 ("lub") at
// phase 0, deep with a slow decay, and S2 ("dub") at phase 0.33, higher
// and sharper at 0.7x gain. Arrhythmia sums three incommensurate sines
// into a phase jitter bounded to roughly +/-40% of a cycle at full
// strength.
func BuildHeartbeat(hb Heartbeat) (*graph.Net, *HeartbeatParams) {
	rate := param.New("heart_rate", hb.HeartRate, 30.0, 220.0)
	intensity := param.New("intensity", hb.Intensity, 0.0, 1.0)
	arrhythmia := param.New("arrhythmia", hb.ArrhythmicStrength, 0.0, 1.0)

	n := graph.NewNet(0, 2)

	beat := n.Push(graph.NewEnv(func(t float64) float64 {
		bpm := math.Max(rate.Get(), 30.0)
		beatPeriod := 60.0 / bpm

		arr := arrhythmia.Get()
		jitter := arr * 0.4 * (math.Sin(tau*0.37*t)*0.5 +
			math.Sin(tau*0.83*t)*0.3 +
			math.Sin(tau*1.71*t)*0.2)
		phase := t/beatPeriod + jitter
		phase -= math.Floor(phase)

		s1 := heartSound(phase*beatPeriod, 45.0, 90.0, 25.0)
		s2 := heartSound((phase-0.33)*beatPeriod, 65.0, 130.0, 35.0) * 0.7

		return (s1 + s2) * intensity.Get()
	}))

	lp := n.Push(graph.NewLowPole(150.0))
	n.Connect(beat, 0, lp, 0)

	split := n.Push(graph.NewSplit())
	n.Connect(lp, 0, split, 0)
	n.ConnectOutput(split, 0, 0)
	n.ConnectOutput(split, 1, 1)

	return n, &HeartbeatParams{Rate: rate, Intensity: intensity, Arrhythmia: arrhythmia}
}
