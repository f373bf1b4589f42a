// Package neural provides the feed-forward networks and vision sensors that
// drive animals.
package neural

import (
	"fmt"
	"iter"
	"math/rand"
)

// Network is an ordered stack of layers.
type Network struct {
	layers []*Layer
}

// Random builds a network for topology with uniformly random parameters.
// The topology needs at least an input and an output layer.
func Random(rng *rand.Rand, topology []LayerTopology) *Network {
	checkTopology(topology)

	layers := make([]*Layer, 0, len(topology)-1)
	for i := 0; i+1 < len(topology); i++ {
		layers = append(layers, RandomLayer(rng, topology[i].Neurons, topology[i+1].Neurons))
	}
	return &Network{layers: layers}
}

// FromWeights rebuilds a network for topology, consuming genes in the order
// produced by Weights. It panics if the sequence is too short or too long.
func FromWeights(topology []LayerTopology, weights iter.Seq[float64]) *Network {
	checkTopology(topology)

	next, stop := iter.Pull(weights)
	defer stop()

	take := func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			v, ok := next()
			if !ok {
				panic("neural: not enough weights for topology")
			}
			out[i] = v
		}
		return out
	}

	layers := make([]*Layer, 0, len(topology)-1)
	for i := 0; i+1 < len(topology); i++ {
		in, out := topology[i].Neurons, topology[i+1].Neurons
		biases := take(out)
		weights := take(in * out)
		layers = append(layers, NewLayer(in, out, biases, weights))
	}

	if _, ok := next(); ok {
		panic("neural: got more weights than topology needs")
	}
	return &Network{layers: layers}
}

func checkTopology(topology []LayerTopology) {
	if len(topology) < 2 {
		panic(fmt.Sprintf("neural: topology needs at least 2 layers, got %d", len(topology)))
	}
	for i, l := range topology {
		if l.Neurons <= 0 {
			panic(fmt.Sprintf("neural: layer %d has %d neurons", i, l.Neurons))
		}
	}
}

// WeightCount returns the number of parameters a network of topology holds.
func WeightCount(topology []LayerTopology) int {
	n := 0
	for i := 0; i+1 < len(topology); i++ {
		n += topology[i+1].Neurons * (topology[i].Neurons + 1)
	}
	return n
}

// Propagate runs input through every layer in order.
func (n *Network) Propagate(input []float64) []float64 {
	for _, l := range n.layers {
		input = l.Propagate(input)
	}
	return input
}

// Activations runs input through the network and returns the input
// followed by the output of every layer.
func (n *Network) Activations(input []float64) [][]float64 {
	acts := make([][]float64, 0, len(n.layers)+1)
	acts = append(acts, input)
	for _, l := range n.layers {
		input = l.Propagate(input)
		acts = append(acts, input)
	}
	return acts
}

// Layers returns the network's layers.
func (n *Network) Layers() []*Layer {
	return n.layers
}

// Topology reports the neuron count of every layer, inputs first.
func (n *Network) Topology() []LayerTopology {
	out := make([]LayerTopology, 0, len(n.layers)+1)
	out = append(out, LayerTopology{Neurons: n.layers[0].Inputs()})
	for _, l := range n.layers {
		out = append(out, LayerTopology{Neurons: l.Outputs()})
	}
	return out
}

// Weights returns a lazy sequence of every parameter: per layer, the biases
// followed by the weights in row-major order.
func (n *Network) Weights() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for _, l := range n.layers {
			for i := range l.Outputs() {
				if !yield(l.Biases.AtVec(i)) {
					return
				}
			}
			rows, cols := l.Weights.Dims()
			for r := range rows {
				for c := range cols {
					if !yield(l.Weights.At(r, c)) {
						return
					}
				}
			}
		}
	}
}
