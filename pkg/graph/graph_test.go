package graph

import (
	"math"
	"testing"

	"github.com/justyntemme/procaudio/pkg/dsp/oscillator"
	"github.com/justyntemme/procaudio/pkg/param"
)

const testBlock = 256

// render pulls frames samples from an allocated net and returns the
// de-interleaved channels.
func render(n *Net, frames int) [][]float32 {
	out := make([][]float32, n.Outputs())
	for ch := range out {
		out[ch] = make([]float32, frames)
	}
	block := make([][]float32, n.Outputs())
	for pos := 0; pos < frames; pos += testBlock {
		size := testBlock
		if frames-pos < size {
			size = frames - pos
		}
		for ch := range block {
			block[ch] = out[ch][pos : pos+size]
		}
		n.Process(size, nil, block)
	}
	return out
}

func mustPanic(t *testing.T, what string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s should panic", what)
		}
	}()
	fn()
}

func TestNetConstToStereo(t *testing.T) {
	n := NewNet(0, 2)
	c := n.Push(NewConst(0.5))
	s := n.Push(NewSplit())
	n.Connect(c, 0, s, 0)
	n.ConnectOutput(s, 0, 0)
	n.ConnectOutput(s, 1, 1)
	n.SetSampleRate(44100)
	n.Allocate(testBlock)

	out := render(n, 512)
	for ch := 0; ch < 2; ch++ {
		for i, v := range out[ch] {
			if v != 0.5 {
				t.Fatalf("Channel %d sample %d: expected 0.5, got %f", ch, i, v)
			}
		}
	}
}

func TestNetUnboundOutputIsSilent(t *testing.T) {
	n := NewNet(0, 2)
	c := n.Push(NewConst(1.0))
	n.ConnectOutput(c, 0, 0)
	// Channel 1 left unbound on purpose.
	n.Allocate(testBlock)

	out := render(n, 128)
	for i, v := range out[1] {
		if v != 0 {
			t.Fatalf("Unbound channel sample %d should be 0, got %f", i, v)
		}
	}
}

func TestNetInvalidWiringPanics(t *testing.T) {
	n := NewNet(0, 2)
	c := n.Push(NewConst(1.0))
	m := n.Push(NewMul())

	mustPanic(t, "unknown source node", func() { n.Connect(7, 0, m, 0) })
	mustPanic(t, "unknown destination node", func() { n.Connect(c, 0, 9, 0) })
	mustPanic(t, "bad source port", func() { n.Connect(c, 1, m, 0) })
	mustPanic(t, "bad destination port", func() { n.Connect(c, 0, m, 5) })
	mustPanic(t, "bad output channel", func() { n.ConnectOutput(m, 0, 3) })

	n.Connect(c, 0, m, 0)
	mustPanic(t, "double-connected input", func() { n.Connect(c, 0, m, 0) })
}

func TestNetCyclePanicsAtAllocate(t *testing.T) {
	n := NewNet(0, 2)
	a := n.Push(NewMul())
	b := n.Push(NewMul())
	n.Connect(a, 0, b, 0)
	n.Connect(b, 0, a, 0)

	mustPanic(t, "cyclic wiring", func() { n.Allocate(testBlock) })
}

func TestNetProcessBeforeAllocatePanics(t *testing.T) {
	n := NewNet(0, 2)
	c := n.Push(NewConst(1.0))
	n.ConnectOutput(c, 0, 0)

	out := [][]float32{make([]float32, 8), make([]float32, 8)}
	mustPanic(t, "process before allocate", func() { n.Process(8, nil, out) })
}

func TestEnvTracksLocalTime(t *testing.T) {
	n := NewNet(0, 2)
	e := n.Push(NewEnv(func(t float64) float64 { return t }))
	s := n.Push(NewSplit())
	n.Connect(e, 0, s, 0)
	n.ConnectOutput(s, 0, 0)
	n.ConnectOutput(s, 1, 1)
	n.SetSampleRate(1000)
	n.Allocate(testBlock)

	out := render(n, 600)
	for i := 0; i < 600; i++ {
		want := float32(float64(i) / 1000.0)
		if math.Abs(float64(out[0][i]-want)) > 1e-6 {
			t.Fatalf("Sample %d: expected t=%f, got %f", i, want, out[0][i])
		}
	}
}

func TestEnvResetRewindsTime(t *testing.T) {
	e := NewEnv(func(t float64) float64 { return t })
	e.SetSampleRate(1000)
	out := [][]float32{make([]float32, 16)}

	e.Process(16, nil, out)
	e.Reset()
	e.Process(16, nil, out)

	if out[0][0] != 0 {
		t.Errorf("After reset local time should restart at 0, got %f", out[0][0])
	}
}

func TestVarReadsHandlePerBlock(t *testing.T) {
	h := param.New("amplitude", 0.25, 0.0, 1.0)

	n := NewNet(0, 2)
	v := n.Push(NewVar(h))
	s := n.Push(NewSplit())
	n.Connect(v, 0, s, 0)
	n.ConnectOutput(s, 0, 0)
	n.ConnectOutput(s, 1, 1)
	n.Allocate(testBlock)

	out := render(n, testBlock)
	if out[0][0] != 0.25 {
		t.Fatalf("Expected initial value 0.25, got %f", out[0][0])
	}

	// A write lands no later than the next block.
	h.Set(0.75)
	out = render(n, testBlock)
	if out[0][0] != 0.75 {
		t.Errorf("Expected updated value 0.75 in next block, got %f", out[0][0])
	}
}

func TestOscFMInputOffsetsFrequency(t *testing.T) {
	// Base 440 with a +220 constant offset must match a fixed 660 Hz osc.
	n := NewNet(0, 2)
	c := n.Push(NewConst(220))
	o := n.Push(NewOsc(oscillator.ShapeSine, 440))
	s := n.Push(NewSplit())
	n.Connect(c, 0, o, 0)
	n.Connect(o, 0, s, 0)
	n.ConnectOutput(s, 0, 0)
	n.ConnectOutput(s, 1, 1)
	n.SetSampleRate(44100)
	n.Allocate(testBlock)

	ref := oscillator.New(oscillator.ShapeSine, 44100)
	ref.SetFrequency(660)

	out := render(n, 1000)
	for i := 0; i < 1000; i++ {
		if out[0][i] != ref.Next() {
			t.Fatalf("FM offset output diverged at sample %d", i)
		}
	}
}

func buildNoiseLayerNet() *Net {
	n := NewNet(0, 2)
	src := n.Push(NewNoise())
	env := n.Push(NewEnv(func(t float64) float64 {
		if t > 0.1 {
			return 0
		}
		return math.Exp(-t * 10.0)
	}))
	m := n.Push(NewMul())
	s := n.Push(NewSplit())
	n.Connect(src, 0, m, 0)
	n.Connect(env, 0, m, 1)
	n.Connect(m, 0, s, 0)
	n.ConnectOutput(s, 0, 0)
	n.ConnectOutput(s, 1, 1)
	return n
}

func TestCloneDeterminism(t *testing.T) {
	canonical := buildNoiseLayerNet()
	canonical.SetSampleRate(44100)

	a := canonical.Clone().(*Net)
	b := canonical.Clone().(*Net)
	for _, n := range []*Net{a, b} {
		n.SetSampleRate(44100)
		n.Reset()
		n.Allocate(testBlock)
	}

	outA := render(a, 8192)
	outB := render(b, 8192)
	for ch := 0; ch < 2; ch++ {
		for i := range outA[ch] {
			if outA[ch][i] != outB[ch][i] {
				t.Fatalf("Clones diverged on channel %d sample %d", ch, i)
			}
		}
	}
}

func TestCloneStateIsolation(t *testing.T) {
	canonical := buildNoiseLayerNet()
	canonical.SetSampleRate(44100)

	a := canonical.Clone().(*Net)
	b := canonical.Clone().(*Net)
	for _, n := range []*Net{a, b} {
		n.SetSampleRate(44100)
		n.Reset()
		n.Allocate(testBlock)
	}

	// Advance clone a; clone b must still start from local time zero.
	render(a, 4096)
	outB := render(b, testBlock)

	fresh := buildNoiseLayerNet()
	fresh.SetSampleRate(44100)
	fresh.Allocate(testBlock)
	outFresh := render(fresh, testBlock)

	for i := range outB[0] {
		if outB[0][i] != outFresh[0][i] {
			t.Fatalf("Clone b was affected by rendering clone a (sample %d)", i)
		}
	}
}

func TestClonesShareParamHandles(t *testing.T) {
	h := param.New("intensity", 0.5, 0.0, 1.0)

	n := NewNet(0, 2)
	v := n.Push(NewVar(h))
	s := n.Push(NewSplit())
	n.Connect(v, 0, s, 0)
	n.ConnectOutput(s, 0, 0)
	n.ConnectOutput(s, 1, 1)

	a := n.Clone().(*Net)
	b := n.Clone().(*Net)
	a.Allocate(testBlock)
	b.Allocate(testBlock)

	h.Set(0.9)

	outA := render(a, testBlock)
	outB := render(b, testBlock)
	if outA[0][0] != 0.9 || outB[0][0] != 0.9 {
		t.Errorf("Both clones should observe the shared cell: %f, %f",
			outA[0][0], outB[0][0])
	}
}

func TestCrossfadeEndpointsAndMidpoint(t *testing.T) {
	build := func(mixAmount float64) *Net {
		n := NewNet(0, 2)
		dry := n.Push(NewConst(1.0))
		wet := n.Push(NewConst(-1.0))
		x := n.Push(NewCrossfade(mixAmount))
		n.Connect(dry, 0, x, 0)
		n.Connect(dry, 0, x, 1)
		n.Connect(wet, 0, x, 2)
		n.Connect(wet, 0, x, 3)
		n.ConnectOutput(x, 0, 0)
		n.ConnectOutput(x, 1, 1)
		n.Allocate(testBlock)
		return n
	}

	cases := []struct {
		mix  float64
		want float32
	}{
		{0.0, 1.0},
		{1.0, -1.0},
		{0.5, 0.0},
		{0.25, 0.5},
	}
	for _, c := range cases {
		out := render(build(c.mix), 64)
		for ch := 0; ch < 2; ch++ {
			if math.Abs(float64(out[ch][0]-c.want)) > 1e-6 {
				t.Errorf("Mix %f channel %d: expected %f, got %f",
					c.mix, ch, c.want, out[ch][0])
			}
		}
	}
}

func TestAddSumsAllInputs(t *testing.T) {
	n := NewNet(0, 2)
	a := n.Push(NewConst(0.1))
	b := n.Push(NewConst(0.2))
	c := n.Push(NewConst(0.3))
	sum := n.Push(NewAdd(3))
	s := n.Push(NewSplit())
	n.Connect(a, 0, sum, 0)
	n.Connect(b, 0, sum, 1)
	n.Connect(c, 0, sum, 2)
	n.Connect(sum, 0, s, 0)
	n.ConnectOutput(s, 0, 0)
	n.ConnectOutput(s, 1, 1)
	n.Allocate(testBlock)

	out := render(n, 16)
	if math.Abs(float64(out[0][0])-0.6) > 1e-6 {
		t.Errorf("Expected 0.6, got %f", out[0][0])
	}
}
