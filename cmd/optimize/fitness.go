package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/game"
	"github.com/pthm-cable/forage/telemetry"
)

// FitnessEvaluator runs headless trainings and scores parameter vectors.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	seeds       []int64
	baseConfig  *config.Config

	mu          sync.Mutex
	bestFitness float64
	bestHistory []telemetry.GenerationStats
	lastTrend   float64 // improvement per generation from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, generations int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestHistory returns the per-generation stats of the best seed of the
// best evaluation.
func (fe *FitnessEvaluator) BestHistory() []telemetry.GenerationStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHistory
}

// LastTrend returns the mean improvement in average fitness per generation
// from the most recent evaluation.
func (fe *FitnessEvaluator) LastTrend() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastTrend
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	trend   float64
	history []telemetry.GenerationStats
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Fitness is the negated mean food per animal over the second half of
// the run, averaged across seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			history := fe.runTraining(cfg, s)
			results[idx] = seedResult{
				fitness: computeFitness(history),
				trend:   computeTrend(history),
				history: history,
			}
		}(i, seed)
	}
	wg.Wait()

	fitness := make([]float64, len(results))
	trends := make([]float64, len(results))
	best := 0
	for i, r := range results {
		fitness[i] = r.fitness
		trends[i] = r.trend
		if r.fitness < results[best].fitness {
			best = i
		}
	}
	avgFitness := stat.Mean(fitness, nil)

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestHistory = results[best].history
	}
	fe.lastTrend = stat.Mean(trends, nil)
	fe.mu.Unlock()

	return avgFitness
}

// runTraining trains a fresh simulation for the configured number of
// generations and returns the stats of each.
func (fe *FitnessEvaluator) runTraining(cfg *config.Config, seed int64) []telemetry.GenerationStats {
	history := make([]telemetry.GenerationStats, 0, fe.generations)
	g, err := game.NewGameWithOptions(game.Options{
		Config:   cfg,
		Seed:     seed,
		Headless: true,
		GenerationCallback: func(stats telemetry.GenerationStats) {
			history = append(history, stats)
		},
	})
	if err != nil {
		// No output directory is set, so creation cannot fail on I/O.
		panic(err)
	}
	defer g.Unload()

	for g.Generation() < fe.generations {
		g.UpdateHeadless()
	}
	return history
}

// copyConfig returns a copy of the base config. Each seed runs its brain
// pass inline since seeds already run in parallel.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Simulation.Workers = 1
	return &cfg
}

// computeFitness negates the mean average fitness over the second half of
// the run, when training has had time to take effect.
func computeFitness(history []telemetry.GenerationStats) float64 {
	if len(history) == 0 {
		return 0
	}
	late := history[len(history)/2:]
	avg := make([]float64, len(late))
	for i, s := range late {
		avg[i] = s.AvgFitness
	}
	return -stat.Mean(avg, nil)
}

// computeTrend fits a line to average fitness over generations and
// returns its slope.
func computeTrend(history []telemetry.GenerationStats) float64 {
	if len(history) < 2 {
		return 0
	}
	xs := make([]float64, len(history))
	ys := make([]float64, len(history))
	for i, s := range history {
		xs[i] = float64(s.Generation)
		ys[i] = s.AvgFitness
	}
	_, beta := stat.LinearRegression(xs, ys, nil, false)
	return beta
}
