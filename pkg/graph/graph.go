// Package graph implements the signal-flow graph the synthesizers are
// built from: a closed set of DSP node types behind one processing
// contract, wired point-to-point into a Net that renders sample blocks.
//
// Topology is fixed once a Net is handed to the render context. Wiring
// mistakes (unknown ids, out-of-range ports) are programming errors and
// panic at construction time; the render path never returns an error.
package graph

import "fmt"

// Unit is the processing contract every node implements.
//
// Process must be deterministic given the node's internal state, current
// parameter values, and inputs, and must not allocate; buffers are
// reserved once in Allocate. Input buffers are read-only. Clone returns a
// fresh-state copy so concurrent playbacks never share mutable DSP state
// (parameter-reader nodes keep sharing their atomic cell).
type Unit interface {
	Inputs() int
	Outputs() int
	SetSampleRate(rate float64)
	Allocate(maxBlock int)
	Reset()
	Clone() Unit
	Process(n int, in, out [][]float32)
}

type connection struct {
	src, srcPort int
	dst, dstPort int
}

type outputBinding struct {
	node, port int
}

// Net is an ordered collection of units plus explicit port connections
// and graph-level output bindings. Build and wire it on the control
// context, Allocate once, then Process blocks from the render context.
// Net itself implements Unit, so a whole graph clones like a node.
type Net struct {
	numInputs  int
	numOutputs int
	sampleRate float64

	units []Unit
	conns []connection
	outs  []outputBinding

	// Render state, built by Allocate.
	order     []int
	inBufs    [][][]float32
	outBufs   [][][]float32
	outputSrc [][]float32
	zero      []float32
	maxBlock  int
	allocated bool
}

// DefaultSampleRate is used until SetSampleRate is called.
const DefaultSampleRate = 44100.0

// NewNet creates an empty net with the given channel counts. Graph-level
// inputs are not supported; sound-effect graphs are pure sources.
func NewNet(inputs, outputs int) *Net {
	if inputs != 0 {
		panic("graph: nets with input channels are not supported")
	}
	if outputs < 1 {
		panic("graph: net needs at least one output channel")
	}
	return &Net{
		numOutputs: outputs,
		sampleRate: DefaultSampleRate,
		outs:       make([]outputBinding, outputs),
	}
}

// Push adds a unit and returns its node id.
func (n *Net) Push(u Unit) int {
	if n.allocated {
		panic("graph: push after allocate")
	}
	n.units = append(n.units, u)
	return len(n.units) - 1
}

// Connect wires src's output port to dst's input port. Every input port
// accepts exactly one connection; unconnected inputs read silence (0),
// which control ports interpret as "no offset from the base value".
func (n *Net) Connect(src, srcPort, dst, dstPort int) {
	if n.allocated {
		panic("graph: connect after allocate")
	}
	n.checkNode("connect source", src)
	n.checkNode("connect destination", dst)
	if srcPort < 0 || srcPort >= n.units[src].Outputs() {
		panic(fmt.Sprintf("graph: connect: node %d has no output port %d", src, srcPort))
	}
	if dstPort < 0 || dstPort >= n.units[dst].Inputs() {
		panic(fmt.Sprintf("graph: connect: node %d has no input port %d", dst, dstPort))
	}
	for _, c := range n.conns {
		if c.dst == dst && c.dstPort == dstPort {
			panic(fmt.Sprintf("graph: connect: input port %d of node %d already connected", dstPort, dst))
		}
	}
	n.conns = append(n.conns, connection{src, srcPort, dst, dstPort})
}

// ConnectOutput binds a node's output port to a graph-level output channel.
func (n *Net) ConnectOutput(node, port, output int) {
	if n.allocated {
		panic("graph: connect after allocate")
	}
	n.checkNode("output source", node)
	if port < 0 || port >= n.units[node].Outputs() {
		panic(fmt.Sprintf("graph: output: node %d has no output port %d", node, port))
	}
	if output < 0 || output >= n.numOutputs {
		panic(fmt.Sprintf("graph: output channel %d out of range", output))
	}
	n.outs[output] = outputBinding{node: node + 1, port: port} // +1 so zero means unbound
}

func (n *Net) checkNode(what string, id int) {
	if id < 0 || id >= len(n.units) {
		panic(fmt.Sprintf("graph: %s: unknown node %d", what, id))
	}
}

// Inputs returns the number of graph-level input channels (always 0).
func (n *Net) Inputs() int { return n.numInputs }

// Outputs returns the number of graph-level output channels.
func (n *Net) Outputs() int { return n.numOutputs }

// SetSampleRate propagates the sample rate to every unit.
func (n *Net) SetSampleRate(rate float64) {
	n.sampleRate = rate
	for _, u := range n.units {
		u.SetSampleRate(rate)
	}
}

// SampleRate returns the current sample rate.
func (n *Net) SampleRate() float64 { return n.sampleRate }

// Reset rewinds every unit to local time zero.
func (n *Net) Reset() {
	for _, u := range n.units {
		u.Reset()
	}
}

// Allocate computes the processing order and reserves every buffer the
// render path will touch. Call it once, before the first Process; a
// cyclic wiring panics here.
func (n *Net) Allocate(maxBlock int) {
	if maxBlock < 1 {
		panic("graph: allocate: block size must be positive")
	}
	n.maxBlock = maxBlock
	n.order = n.sortUnits()
	n.zero = make([]float32, maxBlock)

	n.outBufs = make([][][]float32, len(n.units))
	for id, u := range n.units {
		bufs := make([][]float32, u.Outputs())
		for p := range bufs {
			bufs[p] = make([]float32, maxBlock)
		}
		n.outBufs[id] = bufs
	}

	n.inBufs = make([][][]float32, len(n.units))
	for id, u := range n.units {
		ins := make([][]float32, u.Inputs())
		for p := range ins {
			ins[p] = n.zero
		}
		n.inBufs[id] = ins
	}
	for _, c := range n.conns {
		n.inBufs[c.dst][c.dstPort] = n.outBufs[c.src][c.srcPort]
	}

	n.outputSrc = make([][]float32, n.numOutputs)
	for ch, b := range n.outs {
		if b.node == 0 {
			n.outputSrc[ch] = n.zero
			continue
		}
		n.outputSrc[ch] = n.outBufs[b.node-1][b.port]
	}

	for _, u := range n.units {
		u.Allocate(maxBlock)
	}
	n.allocated = true
}

// sortUnits returns a dependency order over the units (Kahn's algorithm).
func (n *Net) sortUnits() []int {
	indegree := make([]int, len(n.units))
	edges := make([][]int, len(n.units))
	for _, c := range n.conns {
		edges[c.src] = append(edges[c.src], c.dst)
		indegree[c.dst]++
	}

	queue := make([]int, 0, len(n.units))
	for id, d := range indegree {
		if d == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]int, 0, len(n.units))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, dst := range edges[id] {
			indegree[dst]--
			if indegree[dst] == 0 {
				queue = append(queue, dst)
			}
		}
	}
	if len(order) != len(n.units) {
		panic("graph: wiring contains a cycle")
	}
	return order
}

// Process renders n frames into out. in is ignored (nets have no input
// channels); out must have one buffer of at least n samples per output
// channel. No allocation, no locking.
func (n *Net) Process(frames int, in, out [][]float32) {
	if !n.allocated {
		panic("graph: process before allocate")
	}
	if frames > n.maxBlock {
		frames = n.maxBlock
	}
	_ = in

	for _, id := range n.order {
		n.units[id].Process(frames, n.inBufs[id], n.outBufs[id])
	}
	for ch := 0; ch < n.numOutputs; ch++ {
		copy(out[ch][:frames], n.outputSrc[ch][:frames])
	}
}

// Clone deep-copies the net: every unit is cloned with fresh internal
// state (oscillator phase, filter history, delay lines), while
// parameter-reader nodes keep sharing their handle's atomic cell. The
// clone is unallocated; re-initialize it with SetSampleRate, Reset and
// Allocate before rendering.
func (n *Net) Clone() Unit {
	c := &Net{
		numInputs:  n.numInputs,
		numOutputs: n.numOutputs,
		sampleRate: n.sampleRate,
		units:      make([]Unit, len(n.units)),
		conns:      append([]connection(nil), n.conns...),
		outs:       append([]outputBinding(nil), n.outs...),
	}
	for i, u := range n.units {
		c.units[i] = u.Clone()
	}
	return c
}
