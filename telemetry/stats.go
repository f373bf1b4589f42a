package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/forage/genetic"
)

// GenerationStats summarizes one completed generation.
type GenerationStats struct {
	Generation int   `csv:"generation"`
	Tick       int64 `csv:"tick"`
	Animals    int   `csv:"animals"`

	// Fitness is the number of food items each animal collected.
	MinFitness    float64 `csv:"min_fitness"`
	MaxFitness    float64 `csv:"max_fitness"`
	AvgFitness    float64 `csv:"avg_fitness"`
	StdFitness    float64 `csv:"std_fitness"`
	MedianFitness float64 `csv:"median_fitness"`
	P90Fitness    float64 `csv:"p90_fitness"`

	TotalCollisions int   `csv:"total_collisions"`
	DurationMS      int64 `csv:"duration_ms"` // Wall time spent on the generation
}

// NewGenerationStats combines the genetic algorithm's statistics with the
// per-animal fitness distribution.
func NewGenerationStats(generation int, tick int64, stats genetic.Statistics, fitness []float64, elapsed time.Duration) GenerationStats {
	gs := GenerationStats{
		Generation: generation,
		Tick:       tick,
		Animals:    len(fitness),
		MinFitness: stats.MinFitness,
		MaxFitness: stats.MaxFitness,
		AvgFitness: stats.AvgFitness,
		DurationMS: elapsed.Milliseconds(),
	}
	if len(fitness) == 0 {
		return gs
	}

	sorted := slices.Clone(fitness)
	slices.Sort(sorted)

	gs.StdFitness = stat.PopStdDev(sorted, nil)
	gs.MedianFitness = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	gs.P90Fitness = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	for _, f := range sorted {
		gs.TotalCollisions += int(f)
	}
	return gs
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int64("tick", s.Tick),
		slog.Int("animals", s.Animals),
		slog.Float64("min_fitness", s.MinFitness),
		slog.Float64("max_fitness", s.MaxFitness),
		slog.Float64("avg_fitness", s.AvgFitness),
		slog.Float64("std_fitness", s.StdFitness),
		slog.Float64("median_fitness", s.MedianFitness),
		slog.Float64("p90_fitness", s.P90Fitness),
		slog.Int("total_collisions", s.TotalCollisions),
		slog.Int64("duration_ms", s.DurationMS),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation",
		"generation", s.Generation,
		"tick", s.Tick,
		"min", s.MinFitness,
		"max", s.MaxFitness,
		"avg", s.AvgFitness,
		"median", s.MedianFitness,
		"collisions", s.TotalCollisions,
		"duration_ms", s.DurationMS,
	)
}
