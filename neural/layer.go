package neural

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// LayerTopology describes the neuron count of one layer.
type LayerTopology struct {
	Neurons int `yaml:"neurons"`
}

// Layer is a fully connected ReLU layer.
type Layer struct {
	Weights *mat.Dense    // outputs x inputs
	Biases  *mat.VecDense // outputs
}

// NewLayer builds a layer from its biases and a row-major weight slice.
func NewLayer(inputs, outputs int, biases, weights []float64) *Layer {
	if len(biases) != outputs || len(weights) != inputs*outputs {
		panic(fmt.Sprintf("neural: layer %dx%d given %d biases and %d weights",
			outputs, inputs, len(biases), len(weights)))
	}
	return &Layer{
		Weights: mat.NewDense(outputs, inputs, weights),
		Biases:  mat.NewVecDense(outputs, biases),
	}
}

// RandomLayer creates a layer with weights and biases uniform in [-1, 1).
func RandomLayer(rng *rand.Rand, inputs, outputs int) *Layer {
	weights := make([]float64, inputs*outputs)
	for i := range weights {
		weights[i] = rng.Float64()*2 - 1
	}
	biases := make([]float64, outputs)
	for i := range biases {
		biases[i] = rng.Float64()*2 - 1
	}
	return NewLayer(inputs, outputs, biases, weights)
}

// Inputs returns the number of inputs the layer accepts.
func (l *Layer) Inputs() int {
	_, c := l.Weights.Dims()
	return c
}

// Outputs returns the number of neurons in the layer.
func (l *Layer) Outputs() int {
	r, _ := l.Weights.Dims()
	return r
}

// Propagate computes relu(W·input + b).
func (l *Layer) Propagate(input []float64) []float64 {
	if len(input) != l.Inputs() {
		panic(fmt.Sprintf("neural: layer expects %d inputs, got %d", l.Inputs(), len(input)))
	}

	x := mat.NewVecDense(len(input), append([]float64(nil), input...))
	var out mat.VecDense
	out.MulVec(l.Weights, x)
	out.AddVec(&out, l.Biases)

	result := make([]float64, l.Outputs())
	for i := range result {
		result[i] = max(out.AtVec(i), 0)
	}
	return result
}
