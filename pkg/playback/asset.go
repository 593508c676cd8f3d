// Package playback bridges constructed graphs to an output sink. An Asset
// wraps one canonical graph; every play clones it so simultaneous
// playbacks never share oscillator phase, filter history, or reverb delay
// lines. The clone step is the only lock-guarded operation in the steady
// state; once a Decoder owns its clone, rendering is lock-free and
// allocation-free.
package playback

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/justyntemme/procaudio/pkg/graph"
)

// BlockSize is the number of frames pulled from a graph per refill.
const BlockSize = 512

// Asset is an immutable recipe for a sound: one canonical graph plus its
// target format. Parameter handles created at build time stay shared
// across every decoder cloned from the asset.
type Asset struct {
	mu         sync.Mutex
	canonical  graph.Unit
	sampleRate int
	channels   int
}

// NewAsset wraps a constructed graph. The graph is initialized for the
// target rate and allocated once; afterward it is only ever touched under
// the lock, as the clone source. A channel count that does not match the
// graph's outputs is a wiring mistake and panics here, before any decoder
// can reach the render path.
func NewAsset(u graph.Unit, sampleRate, channels int) *Asset {
	if u.Outputs() != channels {
		panic(fmt.Sprintf("playback: graph has %d outputs, asset wants %d channels", u.Outputs(), channels))
	}
	u.SetSampleRate(float64(sampleRate))
	u.Allocate(BlockSize)
	return &Asset{
		canonical:  u,
		sampleRate: sampleRate,
		channels:   channels,
	}
}

// SampleRate returns the asset's target rate in Hz.
func (a *Asset) SampleRate() int { return a.sampleRate }

// Channels returns the asset's channel count.
func (a *Asset) Channels() int { return a.channels }

// Decoder clones the canonical graph and hands the clone to a fresh
// decode instance. The lock covers only the clone.
func (a *Asset) Decoder() *Decoder {
	a.mu.Lock()
	clone := a.canonical.Clone()
	a.mu.Unlock()

	clone.SetSampleRate(float64(a.sampleRate))
	clone.Reset()
	clone.Allocate(BlockSize)

	d := &Decoder{
		graph:      clone,
		sampleRate: a.sampleRate,
		channels:   a.channels,
		planar:     make([][]float32, a.channels),
		buffer:     make([]float32, BlockSize*a.channels),
	}
	for ch := range d.planar {
		d.planar[ch] = make([]float32, BlockSize)
	}
	// Force a fill on the first pull.
	d.pos = len(d.buffer)
	d.total = len(d.buffer)
	return d
}

// Decoder pulls fixed-size blocks from its graph clone, interleaves them,
// and serves samples one at a time. It implements the sink source
// contract and io.Reader (float32 little-endian bytes).
type Decoder struct {
	graph      graph.Unit
	sampleRate int
	channels   int
	planar     [][]float32
	buffer     []float32
	pos        int
	total      int
}

// SampleRate returns the stream rate in Hz.
func (d *Decoder) SampleRate() int { return d.sampleRate }

// Channels returns the interleaved channel count.
func (d *Decoder) Channels() int { return d.channels }

func (d *Decoder) fillBlock() {
	d.graph.Process(BlockSize, nil, d.planar)
	for i := 0; i < BlockSize; i++ {
		base := i * d.channels
		for ch := 0; ch < d.channels; ch++ {
			d.buffer[base+ch] = d.planar[ch][i]
		}
	}
	d.total = BlockSize * d.channels
	d.pos = 0
}

// Next returns the next interleaved sample, refilling transparently.
func (d *Decoder) Next() float32 {
	if d.pos >= d.total {
		d.fillBlock()
	}
	s := d.buffer[d.pos]
	d.pos++
	return s
}

// Read serves the stream as float32 little-endian bytes. It never returns
// io.EOF; procedural graphs produce samples forever (one-shots go silent).
// Trailing bytes that do not fit a whole sample are left for the next
// call.
func (d *Decoder) Read(p []byte) (int, error) {
	n := 0
	for n+4 <= len(p) {
		binary.LittleEndian.PutUint32(p[n:], math.Float32bits(d.Next()))
		n += 4
	}
	if n == 0 && len(p) > 0 {
		return 0, io.ErrShortBuffer
	}
	return n, nil
}
