package graph

import (
	"github.com/justyntemme/procaudio/pkg/dsp/distortion"
	"github.com/justyntemme/procaudio/pkg/dsp/filter"
	"github.com/justyntemme/procaudio/pkg/dsp/mix"
	"github.com/justyntemme/procaudio/pkg/dsp/oscillator"
	"github.com/justyntemme/procaudio/pkg/dsp/reverb"
	"github.com/justyntemme/procaudio/pkg/dsp/utility"
	"github.com/justyntemme/procaudio/pkg/param"
)

// Embeddable no-ops for nodes without buffers, rate dependence, or state.
type noAlloc struct{}

func (noAlloc) Allocate(int) {}

type noRate struct{}

func (noRate) SetSampleRate(float64) {}

type noReset struct{}

func (noReset) Reset() {}

// Const emits a constant value. 0 in, 1 out.
type Const struct {
	noAlloc
	noRate
	noReset
	Value float64
}

// NewConst creates a constant source node.
func NewConst(value float64) *Const { return &Const{Value: value} }

func (c *Const) Inputs() int  { return 0 }
func (c *Const) Outputs() int { return 1 }
func (c *Const) Clone() Unit  { return &Const{Value: c.Value} }

func (c *Const) Process(n int, in, out [][]float32) {
	v := float32(c.Value)
	dst := out[0]
	for i := 0; i < n; i++ {
		dst[i] = v
	}
}

// Add sums its inputs. N in, 1 out.
type Add struct {
	noAlloc
	noRate
	noReset
	numInputs int
}

// NewAdd creates an adder with the given number of input ports.
func NewAdd(inputs int) *Add { return &Add{numInputs: inputs} }

func (a *Add) Inputs() int  { return a.numInputs }
func (a *Add) Outputs() int { return 1 }
func (a *Add) Clone() Unit  { return &Add{numInputs: a.numInputs} }

func (a *Add) Process(n int, in, out [][]float32) {
	copy(out[0][:n], in[0][:n])
	for p := 1; p < a.numInputs; p++ {
		mix.Sum(out[0][:n], in[p][:n])
	}
}

// Mul multiplies two signals, the layer = source × envelope combinator.
// 2 in, 1 out.
type Mul struct {
	noAlloc
	noRate
	noReset
}

// NewMul creates a two-input multiplier.
func NewMul() *Mul { return &Mul{} }

func (m *Mul) Inputs() int  { return 2 }
func (m *Mul) Outputs() int { return 1 }
func (m *Mul) Clone() Unit  { return &Mul{} }

func (m *Mul) Process(n int, in, out [][]float32) {
	a, b, dst := in[0], in[1], out[0]
	for i := 0; i < n; i++ {
		dst[i] = a[i] * b[i]
	}
}

// Split duplicates a mono signal to two channels. 1 in, 2 out.
type Split struct {
	noAlloc
	noRate
	noReset
}

// NewSplit creates a mono-to-stereo splitter.
func NewSplit() *Split { return &Split{} }

func (s *Split) Inputs() int  { return 1 }
func (s *Split) Outputs() int { return 2 }
func (s *Split) Clone() Unit  { return &Split{} }

func (s *Split) Process(n int, in, out [][]float32) {
	copy(out[0][:n], in[0][:n])
	copy(out[1][:n], in[0][:n])
}

// Crossfade blends a dry stereo pair with a wet stereo pair:
// out = dry*(1-mix) + wet*mix. Inputs: dryL, dryR, wetL, wetR; 2 out.
type Crossfade struct {
	noAlloc
	noRate
	noReset
	Mix float64
}

// NewCrossfade creates a stereo dry/wet crossfade with a fixed mix.
func NewCrossfade(mixAmount float64) *Crossfade { return &Crossfade{Mix: mixAmount} }

func (c *Crossfade) Inputs() int  { return 4 }
func (c *Crossfade) Outputs() int { return 2 }
func (c *Crossfade) Clone() Unit  { return &Crossfade{Mix: c.Mix} }

func (c *Crossfade) Process(n int, in, out [][]float32) {
	amount := float32(c.Mix)
	for i := 0; i < n; i++ {
		out[0][i] = mix.DryWet(in[0][i], in[2][i], amount)
		out[1][i] = mix.DryWet(in[1][i], in[3][i], amount)
	}
}

// Env evaluates a pure function of local elapsed time, once per sample.
// It is the envelope and LFO primitive: the function may close over
// parameter handles for live control values. 0 in, 1 out.
type Env struct {
	noAlloc
	Fn         func(t float64) float64
	sampleRate float64
	samples    int64
}

// NewEnv creates a time-function source node.
func NewEnv(fn func(t float64) float64) *Env {
	return &Env{Fn: fn, sampleRate: DefaultSampleRate}
}

func (e *Env) Inputs() int  { return 0 }
func (e *Env) Outputs() int { return 1 }

func (e *Env) SetSampleRate(rate float64) { e.sampleRate = rate }

// Reset rewinds local time to zero.
func (e *Env) Reset() { e.samples = 0 }

// Clone starts a fresh instance at local time zero sharing the same function.
func (e *Env) Clone() Unit { return &Env{Fn: e.Fn, sampleRate: e.sampleRate} }

func (e *Env) Process(n int, in, out [][]float32) {
	dst := out[0]
	for i := 0; i < n; i++ {
		t := float64(e.samples+int64(i)) / e.sampleRate
		dst[i] = float32(e.Fn(t))
	}
	e.samples += int64(n)
}

// Var reads a parameter handle. The cell is loaded once per block, so a
// control-context write is visible no later than the next block. 0 in, 1 out.
type Var struct {
	noAlloc
	noRate
	noReset
	Handle *param.Handle
}

// NewVar creates a parameter-reader node.
func NewVar(h *param.Handle) *Var { return &Var{Handle: h} }

func (v *Var) Inputs() int  { return 0 }
func (v *Var) Outputs() int { return 1 }

// Clone shares the handle's cell; that sharing is the parameter bridge.
func (v *Var) Clone() Unit { return &Var{Handle: v.Handle} }

func (v *Var) Process(n int, in, out [][]float32) {
	val := float32(v.Handle.Get())
	dst := out[0]
	for i := 0; i < n; i++ {
		dst[i] = val
	}
}

// Osc is a waveform oscillator. Its input port offsets the base frequency
// in Hz per sample (FM); unconnected it runs at BaseFreq. 1 in, 1 out.
type Osc struct {
	noAlloc
	Shape    oscillator.Shape
	BaseFreq float64
	osc      *oscillator.Oscillator
}

// NewOsc creates an oscillator node with the given waveform and base
// frequency in Hz.
func NewOsc(shape oscillator.Shape, baseFreq float64) *Osc {
	return &Osc{
		Shape:    shape,
		BaseFreq: baseFreq,
		osc:      oscillator.New(shape, DefaultSampleRate),
	}
}

func (o *Osc) Inputs() int  { return 1 }
func (o *Osc) Outputs() int { return 1 }

func (o *Osc) SetSampleRate(rate float64) { o.osc.SetSampleRate(rate) }
func (o *Osc) Reset()                     { o.osc.Reset() }

func (o *Osc) Clone() Unit {
	return &Osc{Shape: o.Shape, BaseFreq: o.BaseFreq, osc: oscillator.New(o.Shape, DefaultSampleRate)}
}

func (o *Osc) Process(n int, in, out [][]float32) {
	freqIn, dst := in[0], out[0]
	for i := 0; i < n; i++ {
		dst[i] = o.osc.NextAt(o.BaseFreq + float64(freqIn[i]))
	}
}

// Noise is a deterministic white-noise source. Clones restart the same
// seeded sequence, so independent playbacks of one recipe sound identical.
// 0 in, 1 out.
type Noise struct {
	noAlloc
	noRate
	gen *utility.Noise
}

// NewNoise creates a noise node with the default seed.
func NewNoise() *Noise { return NewNoiseSeeded(utility.DefaultNoiseSeed) }

// NewNoiseSeeded creates a noise node with an explicit seed, for layers
// that need uncorrelated streams.
func NewNoiseSeeded(seed uint64) *Noise {
	return &Noise{gen: utility.NewNoise(seed)}
}

func (no *Noise) Inputs() int  { return 0 }
func (no *Noise) Outputs() int { return 1 }
func (no *Noise) Reset()       { no.gen.Reset() }

func (no *Noise) Clone() Unit { return &Noise{gen: utility.NewNoise(no.gen.Seed())} }

func (no *Noise) Process(n int, in, out [][]float32) {
	no.gen.Process(out[0][:n])
}

// LowPole is a one-pole lowpass. Port 0 is audio; port 1 offsets the base
// cutoff in Hz per sample, which the swept-cutoff layers drive with an Env
// (base 0, absolute cutoff on the wire). 2 in, 1 out.
type LowPole struct {
	noAlloc
	BaseCutoff float64
	f          *filter.OnePole
}

// NewLowPole creates a one-pole lowpass node.
func NewLowPole(baseCutoff float64) *LowPole {
	return &LowPole{BaseCutoff: baseCutoff, f: filter.NewLowPole(DefaultSampleRate, baseCutoff)}
}

func (l *LowPole) Inputs() int  { return 2 }
func (l *LowPole) Outputs() int { return 1 }

func (l *LowPole) SetSampleRate(rate float64) { l.f.SetSampleRate(rate) }
func (l *LowPole) Reset()                     { l.f.Reset() }

func (l *LowPole) Clone() Unit {
	return &LowPole{BaseCutoff: l.BaseCutoff, f: filter.NewLowPole(DefaultSampleRate, l.BaseCutoff)}
}

func (l *LowPole) Process(n int, in, out [][]float32) {
	audio, cutoff, dst := in[0], in[1], out[0]
	for i := 0; i < n; i++ {
		l.f.SetCutoff(l.BaseCutoff + float64(cutoff[i]))
		dst[i] = l.f.Next(audio[i])
	}
}

// HighPole is the one-pole highpass counterpart of LowPole. 2 in, 1 out.
type HighPole struct {
	noAlloc
	BaseCutoff float64
	f          *filter.OnePole
}

// NewHighPole creates a one-pole highpass node.
func NewHighPole(baseCutoff float64) *HighPole {
	return &HighPole{BaseCutoff: baseCutoff, f: filter.NewHighPole(DefaultSampleRate, baseCutoff)}
}

func (h *HighPole) Inputs() int  { return 2 }
func (h *HighPole) Outputs() int { return 1 }

func (h *HighPole) SetSampleRate(rate float64) { h.f.SetSampleRate(rate) }
func (h *HighPole) Reset()                     { h.f.Reset() }

func (h *HighPole) Clone() Unit {
	return &HighPole{BaseCutoff: h.BaseCutoff, f: filter.NewHighPole(DefaultSampleRate, h.BaseCutoff)}
}

func (h *HighPole) Process(n int, in, out [][]float32) {
	audio, cutoff, dst := in[0], in[1], out[0]
	for i := 0; i < n; i++ {
		h.f.SetCutoff(h.BaseCutoff + float64(cutoff[i]))
		dst[i] = h.f.Next(audio[i])
	}
}

// BandPass is a biquad bandpass. Port 0 audio, port 1 center offset (Hz),
// port 2 Q offset. Coefficients recompute only when the tuning moves.
// 3 in, 1 out.
type BandPass struct {
	noAlloc
	BaseCenter float64
	BaseQ      float64

	f          *filter.Biquad
	sampleRate float64
	lastCenter float64
	lastQ      float64
}

// NewBandPass creates a bandpass node centered at baseCenter Hz with
// quality factor baseQ.
func NewBandPass(baseCenter, baseQ float64) *BandPass {
	return &BandPass{
		BaseCenter: baseCenter,
		BaseQ:      baseQ,
		f:          filter.NewBiquad(),
		sampleRate: DefaultSampleRate,
	}
}

func (b *BandPass) Inputs() int  { return 3 }
func (b *BandPass) Outputs() int { return 1 }

func (b *BandPass) SetSampleRate(rate float64) {
	b.sampleRate = rate
	b.lastCenter = 0 // force redesign on next Process
}

func (b *BandPass) Reset() { b.f.Reset() }

func (b *BandPass) Clone() Unit {
	return NewBandPass(b.BaseCenter, b.BaseQ)
}

func (b *BandPass) Process(n int, in, out [][]float32) {
	audio, center, q, dst := in[0], in[1], in[2], out[0]
	for i := 0; i < n; i++ {
		fc := b.BaseCenter + float64(center[i])
		fq := b.BaseQ + float64(q[i])
		if fc != b.lastCenter || fq != b.lastQ {
			if fc < 1 {
				fc = 1
			}
			if fq < 0.05 {
				fq = 0.05
			}
			b.f.SetBandpass(b.sampleRate, fc, fq)
			b.lastCenter = fc
			b.lastQ = fq
		}
		dst[i] = b.f.Next(audio[i])
	}
}

// Moog is a resonant ladder lowpass. Port 0 audio, port 1 cutoff offset
// (Hz), port 2 resonance offset; the generic builder drives ports 1 and 2
// from parameter readers. 3 in, 1 out.
type Moog struct {
	noAlloc
	BaseCutoff    float64
	BaseResonance float64
	f             *filter.Moog
}

// NewMoog creates a ladder filter node.
func NewMoog(baseCutoff, baseResonance float64) *Moog {
	return &Moog{
		BaseCutoff:    baseCutoff,
		BaseResonance: baseResonance,
		f:             filter.NewMoog(DefaultSampleRate, baseCutoff, baseResonance),
	}
}

func (m *Moog) Inputs() int  { return 3 }
func (m *Moog) Outputs() int { return 1 }

func (m *Moog) SetSampleRate(rate float64) { m.f.SetSampleRate(rate) }
func (m *Moog) Reset()                     { m.f.Reset() }

func (m *Moog) Clone() Unit {
	return NewMoog(m.BaseCutoff, m.BaseResonance)
}

func (m *Moog) Process(n int, in, out [][]float32) {
	audio, cutoff, res, dst := in[0], in[1], in[2], out[0]
	for i := 0; i < n; i++ {
		m.f.SetParams(m.BaseCutoff+float64(cutoff[i]), m.BaseResonance+float64(res[i]))
		dst[i] = m.f.Next(audio[i])
	}
}

// Distortion is the saturating waveshaper stage. 1 in, 1 out.
type Distortion struct {
	noAlloc
	noRate
	noReset
	Drive float64
	Mix   float64
	w     *distortion.Waveshaper
}

// NewDistortion creates a waveshaper node.
func NewDistortion(drive, mixAmount float64) *Distortion {
	return &Distortion{Drive: drive, Mix: mixAmount, w: distortion.NewWaveshaper(drive, mixAmount)}
}

func (d *Distortion) Inputs() int  { return 1 }
func (d *Distortion) Outputs() int { return 1 }

func (d *Distortion) Clone() Unit { return NewDistortion(d.Drive, d.Mix) }

func (d *Distortion) Process(n int, in, out [][]float32) {
	copy(out[0][:n], in[0][:n])
	d.w.Process(out[0][:n])
}

// Reverb wraps the stereo reverb tank as a graph node. The tank's delay
// lines are sized in Allocate, after the sample rate is known. 2 in, 2 out.
type Reverb struct {
	RoomSize  float64
	DecayTime float64
	Damping   float64

	sampleRate float64
	rv         *reverb.Stereo
}

// NewReverb creates a stereo reverb node. roomSize in [0,1], decayTime in
// seconds, damping in [0,1].
func NewReverb(roomSize, decayTime, damping float64) *Reverb {
	return &Reverb{
		RoomSize:   roomSize,
		DecayTime:  decayTime,
		Damping:    damping,
		sampleRate: DefaultSampleRate,
	}
}

func (r *Reverb) Inputs() int  { return 2 }
func (r *Reverb) Outputs() int { return 2 }

func (r *Reverb) SetSampleRate(rate float64) {
	r.sampleRate = rate
	r.rv = nil // delay lines must be rebuilt for the new rate
}

// Allocate builds the delay lines for the current sample rate.
func (r *Reverb) Allocate(maxBlock int) {
	if r.rv == nil || r.rv.SampleRate() != r.sampleRate {
		r.rv = reverb.NewStereo(r.sampleRate, r.RoomSize, r.DecayTime, r.Damping)
	}
}

func (r *Reverb) Reset() {
	if r.rv != nil {
		r.rv.Reset()
	}
}

func (r *Reverb) Clone() Unit {
	c := NewReverb(r.RoomSize, r.DecayTime, r.Damping)
	c.sampleRate = r.sampleRate
	return c
}

func (r *Reverb) Process(n int, in, out [][]float32) {
	for i := 0; i < n; i++ {
		out[0][i], out[1][i] = r.rv.ProcessStereo(in[0][i], in[1][i])
	}
}
