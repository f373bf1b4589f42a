package neural

import (
	"math"
	"math/rand"
	"slices"
	"testing"
)

func testTopology() []LayerTopology {
	return []LayerTopology{{Neurons: 3}, {Neurons: 4}, {Neurons: 2}}
}

func TestRandomShape(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	nn := Random(rng, testTopology())

	if len(nn.Layers()) != 2 {
		t.Fatalf("got %d layers, want 2", len(nn.Layers()))
	}
	if got := nn.Topology(); !slices.Equal(got, testTopology()) {
		t.Errorf("Topology() = %v, want %v", got, testTopology())
	}

	count := 0
	for w := range nn.Weights() {
		if w < -1 || w >= 1 {
			t.Errorf("weight %v outside [-1, 1)", w)
		}
		count++
	}
	if want := WeightCount(testTopology()); count != want {
		t.Errorf("got %d weights, want %d", count, want)
	}
}

func TestPropagate(t *testing.T) {
	// Layer 1: 2 inputs -> 2 neurons; layer 2: 2 -> 1.
	topology := []LayerTopology{{Neurons: 2}, {Neurons: 2}, {Neurons: 1}}
	weights := []float64{
		// layer 1 biases
		0.5, -1,
		// layer 1 weights, row-major
		1, 2,
		-1, 0.5,
		// layer 2 bias
		0.25,
		// layer 2 weights
		2, 3,
	}
	nn := FromWeights(topology, slices.Values(weights))

	tests := []struct {
		name  string
		input []float64
		want  float64
	}{
		// hidden = relu(0.5+1+4, -1-1+1) = (5.5, 0); out = 0.25 + 11
		{"positive", []float64{1, 2}, 11.25},
		// hidden = relu(0.5-1-2, -1+1-0.5) = (0, 0); out = 0.25
		{"all hidden clipped", []float64{-1, -1}, 0.25},
		// hidden = relu(0.5, -1) = (0.5, 0); out = 0.25 + 1
		{"zero input", []float64{0, 0}, 1.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nn.Propagate(tt.input)
			if len(got) != 1 || math.Abs(got[0]-tt.want) > 1e-12 {
				t.Errorf("Propagate(%v) = %v, want [%v]", tt.input, got, tt.want)
			}
		})
	}
}

func TestActivations(t *testing.T) {
	topology := []LayerTopology{{Neurons: 2}, {Neurons: 2}, {Neurons: 1}}
	weights := []float64{0.5, -1, 1, 2, -1, 0.5, 0.25, 2, 3}
	nn := FromWeights(topology, slices.Values(weights))

	acts := nn.Activations([]float64{1, 2})
	want := [][]float64{{1, 2}, {5.5, 0}, {11.25}}
	if len(acts) != len(want) {
		t.Fatalf("got %d activation vectors, want %d", len(acts), len(want))
	}
	for i := range want {
		if !slices.Equal(acts[i], want[i]) {
			t.Errorf("layer %d activations = %v, want %v", i, acts[i], want[i])
		}
	}
}

func TestPropagateReLU(t *testing.T) {
	topology := []LayerTopology{{Neurons: 1}, {Neurons: 1}}
	nn := FromWeights(topology, slices.Values([]float64{0, -1}))
	if got := nn.Propagate([]float64{3}); got[0] != 0 {
		t.Errorf("negative activation not clipped: %v", got)
	}
}

func TestWeightsOrder(t *testing.T) {
	topology := []LayerTopology{{Neurons: 2}, {Neurons: 3}}
	want := []float64{0.1, 0.2, 0.3, 1, 2, 3, 4, 5, 6}
	nn := FromWeights(topology, slices.Values(want))

	got := slices.Collect(nn.Weights())
	if !slices.Equal(got, want) {
		t.Errorf("Weights() = %v, want %v", got, want)
	}

	l := nn.Layers()[0]
	if l.Biases.AtVec(2) != 0.3 {
		t.Errorf("bias 2 = %v, want 0.3", l.Biases.AtVec(2))
	}
	if l.Weights.At(1, 0) != 3 {
		t.Errorf("weight (1,0) = %v, want 3", l.Weights.At(1, 0))
	}
}

func TestWeightsRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	topology := []LayerTopology{{Neurons: 9}, {Neurons: 9}, {Neurons: 2}}
	original := Random(rng, topology)
	rebuilt := FromWeights(topology, original.Weights())

	if !slices.Equal(slices.Collect(original.Weights()), slices.Collect(rebuilt.Weights())) {
		t.Fatal("rebuilt network has different weights")
	}

	for range 20 {
		input := make([]float64, 9)
		for i := range input {
			input[i] = rng.Float64()
		}
		a := original.Propagate(input)
		b := rebuilt.Propagate(input)
		if !slices.Equal(a, b) {
			t.Errorf("outputs differ for %v: %v vs %v", input, a, b)
		}
	}
}

func TestWeightsRestartable(t *testing.T) {
	nn := Random(rand.New(rand.NewSource(42)), testTopology())
	seq := nn.Weights()
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) {
		t.Error("ranging Weights() twice gave different sequences")
	}
}

func TestFromWeightsPanics(t *testing.T) {
	n := WeightCount(testTopology())
	tests := []struct {
		name     string
		topology []LayerTopology
		weights  []float64
	}{
		{"too few", testTopology(), make([]float64, n-1)},
		{"too many", testTopology(), make([]float64, n+1)},
		{"single layer", []LayerTopology{{Neurons: 3}}, nil},
		{"empty layer", []LayerTopology{{Neurons: 3}, {Neurons: 0}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			FromWeights(tt.topology, slices.Values(tt.weights))
		})
	}
}

func TestPropagateWrongInputPanics(t *testing.T) {
	nn := Random(rand.New(rand.NewSource(42)), testTopology())
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	nn.Propagate([]float64{1})
}

func TestBrainThink(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := NewRandomBrain(rng, 9, 9)

	if got := WeightCount(BrainTopology(9, 9)); got != 9*10+2*10 {
		t.Errorf("brain has %d weights, want 110", got)
	}

	speed, rot := b.Think(make([]float64, 9))
	if speed < 0 || rot < 0 {
		t.Errorf("ReLU outputs must be non-negative, got %v %v", speed, rot)
	}

	clone := BrainFromWeights(9, 9, b.Weights())
	s2, r2 := clone.Think(make([]float64, 9))
	if s2 != speed || r2 != rot {
		t.Errorf("rebuilt brain disagrees: (%v, %v) vs (%v, %v)", s2, r2, speed, rot)
	}
}

func BenchmarkPropagate(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	nn := Random(rng, BrainTopology(9, 9))
	input := make([]float64, 9)
	for i := range input {
		input[i] = rng.Float64()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		nn.Propagate(input)
	}
}
