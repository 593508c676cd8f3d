// Package synth assembles a tunable oscillator→filter→distortion→amplitude
// chain, with optional reverb, from a declarative configuration. The
// returned graph is stereo; the returned Params carry the live handles the
// control context may retune while the graph renders.
package synth

import (
	"github.com/justyntemme/procaudio/pkg/dsp/oscillator"
	"github.com/justyntemme/procaudio/pkg/graph"
	"github.com/justyntemme/procaudio/pkg/param"
)

// OscillatorType selects the source waveform for a built chain.
type OscillatorType int

const (
	Sine OscillatorType = iota
	Saw
	Square
	Triangle
	// NoiseSource replaces the oscillator with a white noise generator;
	// the frequency handle still exists but drives nothing.
	NoiseSource
)

// LowPass configures a resonant low-pass stage (Moog ladder).
type LowPass struct {
	CutoffHz  float64
	Resonance float64
}

// HighPass configures a one-pole high-pass stage.
type HighPass struct {
	CutoffHz  float64
	Resonance float64
}

// BandPass configures a band-pass stage. Bandwidth feeds the filter's Q
// port directly.
type BandPass struct {
	CenterHz  float64
	Bandwidth float64
}

// Reverb configures the post-chain stereo reverb wrap. It is applied at
// build time and is not live-tunable.
type Reverb struct {
	RoomSize  float64
	DecayTime float64
	Damping   float64
	// Mix is the wet fraction, 0 dry to 1 fully wet.
	Mix float64
}

// Delay is accepted for forward compatibility but not yet applied to the
// chain.
type Delay struct {
	TimeSeconds float64
	Feedback    float64
	Mix         float64
}

// Distortion configures the saturating waveshaper stage.
type Distortion struct {
	Drive float64
	Mix   float64
}

// Config describes a complete synth chain. Filter configs follow a strict
// priority: low-pass beats high-pass beats band-pass, and at most one
// stage is inserted.
type Config struct {
	Oscillator OscillatorType
	Frequency  float64
	Amplitude  float64

	LowPass    *LowPass
	HighPass   *HighPass
	BandPass   *BandPass
	Reverb     *Reverb
	Delay      *Delay
	Distortion *Distortion
}

// DefaultConfig returns a plain 440 Hz sine at moderate volume.
func DefaultConfig() Config {
	return Config{
		Oscillator: Sine,
		Frequency:  440.0,
		Amplitude:  0.3,
	}
}

// Params holds the live handles for a built chain. FilterCutoff and
// FilterResonance are nil when no filter stage exists; a high-pass stage
// sets FilterCutoff only.
type Params struct {
	Frequency       *param.Handle
	Amplitude       *param.Handle
	FilterCutoff    *param.Handle
	FilterResonance *param.Handle
}

func shapeOf(t OscillatorType) oscillator.Shape {
	switch t {
	case Saw:
		return oscillator.ShapeSaw
	case Square:
		return oscillator.ShapeSquare
	case Triangle:
		return oscillator.ShapeTriangle
	default:
		return oscillator.ShapeSine
	}
}

// Build wires cfg into a stereo graph and returns it with its live
// handles. The graph is unallocated; the caller sets the sample rate and
// allocates before rendering (playback.NewAsset does both).
func Build(cfg Config) (*graph.Net, *Params) {
	freq := param.New("frequency", cfg.Frequency, 20.0, 20000.0)
	amp := param.New("amplitude", cfg.Amplitude, 0.0, 1.0)
	params := &Params{Frequency: freq, Amplitude: amp}

	net := graph.NewNet(0, 2)

	var last int
	if cfg.Oscillator == NoiseSource {
		last = net.Push(graph.NewNoise())
	} else {
		fv := net.Push(graph.NewVar(freq))
		osc := net.Push(graph.NewOsc(shapeOf(cfg.Oscillator), 0))
		net.Connect(fv, 0, osc, 0)
		last = osc
	}

	// At most one filter stage, highest priority wins.
	switch {
	case cfg.LowPass != nil:
		cutoff := param.New("filter_cutoff", cfg.LowPass.CutoffHz, 20.0, 20000.0)
		res := param.New("filter_resonance", cfg.LowPass.Resonance, 0.1, 10.0)
		cv := net.Push(graph.NewVar(cutoff))
		rv := net.Push(graph.NewVar(res))
		f := net.Push(graph.NewMoog(0, 0))
		net.Connect(last, 0, f, 0)
		net.Connect(cv, 0, f, 1)
		net.Connect(rv, 0, f, 2)
		params.FilterCutoff = cutoff
		params.FilterResonance = res
		last = f

	case cfg.HighPass != nil:
		// The handle is published for the host's sync path, but the
		// one-pole keeps the coefficient it was built with.
		params.FilterCutoff = param.New("filter_cutoff", cfg.HighPass.CutoffHz, 20.0, 20000.0)
		f := net.Push(graph.NewHighPole(cfg.HighPass.CutoffHz))
		net.Connect(last, 0, f, 0)
		last = f

	case cfg.BandPass != nil:
		center := param.New("filter_cutoff", cfg.BandPass.CenterHz, 20.0, 20000.0)
		bw := param.New("filter_resonance", cfg.BandPass.Bandwidth, 10.0, 5000.0)
		cv := net.Push(graph.NewVar(center))
		bv := net.Push(graph.NewVar(bw))
		f := net.Push(graph.NewBandPass(0, 0))
		net.Connect(last, 0, f, 0)
		net.Connect(cv, 0, f, 1)
		net.Connect(bv, 0, f, 2)
		params.FilterCutoff = center
		params.FilterResonance = bw
		last = f
	}

	if d := cfg.Distortion; d != nil {
		dist := net.Push(graph.NewDistortion(d.Drive, d.Mix))
		net.Connect(last, 0, dist, 0)
		last = dist
	}

	// Amplitude as a live multiply, not a static gain.
	av := net.Push(graph.NewVar(amp))
	mul := net.Push(graph.NewMul())
	net.Connect(last, 0, mul, 0)
	net.Connect(av, 0, mul, 1)
	last = mul

	split := net.Push(graph.NewSplit())
	net.Connect(last, 0, split, 0)

	if r := cfg.Reverb; r != nil && r.Mix > 0.001 {
		rev := net.Push(graph.NewReverb(r.RoomSize, r.DecayTime, r.Damping))
		fade := net.Push(graph.NewCrossfade(r.Mix))
		net.Connect(split, 0, rev, 0)
		net.Connect(split, 1, rev, 1)
		net.Connect(split, 0, fade, 0)
		net.Connect(split, 1, fade, 1)
		net.Connect(rev, 0, fade, 2)
		net.Connect(rev, 1, fade, 3)
		net.ConnectOutput(fade, 0, 0)
		net.ConnectOutput(fade, 1, 1)
	} else {
		net.ConnectOutput(split, 0, 0)
		net.ConnectOutput(split, 1, 1)
	}

	return net, params
}
