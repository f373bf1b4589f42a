package neural

import (
	"iter"
	"math/rand"
)

// NumOutputs is the number of brain outputs: speed delta and rotation delta.
const NumOutputs = 2

// BrainTopology returns the layer layout of an animal brain: one input per
// eye cell, a hidden layer of neurons, and the two motor outputs.
func BrainTopology(eyeCells, neurons int) []LayerTopology {
	return []LayerTopology{
		{Neurons: eyeCells},
		{Neurons: neurons},
		{Neurons: NumOutputs},
	}
}

// Brain maps vision to motor commands.
type Brain struct {
	nn *Network
}

// NewRandomBrain creates a brain with random weights.
func NewRandomBrain(rng *rand.Rand, eyeCells, neurons int) *Brain {
	return &Brain{nn: Random(rng, BrainTopology(eyeCells, neurons))}
}

// BrainFromWeights rebuilds a brain from a gene sequence.
func BrainFromWeights(eyeCells, neurons int, weights iter.Seq[float64]) *Brain {
	return &Brain{nn: FromWeights(BrainTopology(eyeCells, neurons), weights)}
}

// Think propagates vision and returns the raw speed and rotation outputs.
func (b *Brain) Think(vision []float64) (speed, rotation float64) {
	out := b.nn.Propagate(vision)
	return out[0], out[1]
}

// Weights returns the brain's parameters as a gene sequence.
func (b *Brain) Weights() iter.Seq[float64] {
	return b.nn.Weights()
}

// Network returns the underlying network.
func (b *Brain) Network() *Network {
	return b.nn
}
