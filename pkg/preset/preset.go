// Package preset contains the seven designed sound effects. Each preset is
// a pure construction function: it wires primitive nodes into a stereo
// graph from a small parameter struct and never touches the render path
// afterward. One-shot presets (sword slash, blunt impact, lightning zap and
// strike, explosion, arcane attack) return only the graph; continuous
// presets (heartbeat, ear ringing) also return live parameter handles.
//
// Every preset follows the same shape: a sum of independent layers, each a
// signal source multiplied by an envelope that is a pure function of local
// elapsed time and returns exactly 0 past its documented cutoff. The sum
// splits to stereo and, when a reverb mix is requested, crossfades with a
// reverb-processed copy of itself.
package preset

import "github.com/justyntemme/procaudio/pkg/graph"

// reverbSpec holds the per-preset reverb tank character.
type reverbSpec struct {
	room, decay, damp float64
}

// mulLayer multiplies a source node by an envelope node.
func mulLayer(n *graph.Net, src, env int) int {
	m := n.Push(graph.NewMul())
	n.Connect(src, 0, m, 0)
	n.Connect(env, 0, m, 1)
	return m
}

// sumLayers mixes node outputs into one mono signal.
func sumLayers(n *graph.Net, ids ...int) int {
	s := n.Push(graph.NewAdd(len(ids)))
	for i, id := range ids {
		n.Connect(id, 0, s, i)
	}
	return s
}

// finishStereo splits the mono mix to stereo and binds the graph outputs.
// With mix above the audibility floor the dry pair crossfades against a
// reverb-processed copy: out = dry*(1-mix) + wet*mix.
func finishStereo(n *graph.Net, mono int, rev reverbSpec, mix float64) {
	split := n.Push(graph.NewSplit())
	n.Connect(mono, 0, split, 0)

	if mix <= 0.001 {
		n.ConnectOutput(split, 0, 0)
		n.ConnectOutput(split, 1, 1)
		return
	}

	r := n.Push(graph.NewReverb(rev.room, rev.decay, rev.damp))
	fade := n.Push(graph.NewCrossfade(mix))
	n.Connect(split, 0, r, 0)
	n.Connect(split, 1, r, 1)
	n.Connect(split, 0, fade, 0)
	n.Connect(split, 1, fade, 1)
	n.Connect(r, 0, fade, 2)
	n.Connect(r, 1, fade, 3)
	n.ConnectOutput(fade, 0, 0)
	n.ConnectOutput(fade, 1, 1)
}
