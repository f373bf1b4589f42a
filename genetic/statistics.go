package genetic

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistics summarizes the fitness of one population.
type Statistics struct {
	MinFitness float64
	MaxFitness float64
	AvgFitness float64
}

// NewStatistics computes statistics over population. It panics on an empty population.
func NewStatistics[I Individual](population []I) Statistics {
	if len(population) == 0 {
		panic("genetic: statistics of an empty population")
	}
	f := fitnesses(population)
	return Statistics{
		MinFitness: floats.Min(f),
		MaxFitness: floats.Max(f),
		AvgFitness: stat.Mean(f, nil),
	}
}

func (s Statistics) String() string {
	return fmt.Sprintf("min=%.2f, max=%.2f, avg=%.2f", s.MinFitness, s.MaxFitness, s.AvgFitness)
}

// LogValue implements slog.LogValuer.
func (s Statistics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("min", s.MinFitness),
		slog.Float64("max", s.MaxFitness),
		slog.Float64("avg", s.AvgFitness),
	)
}
