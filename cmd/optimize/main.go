// Package main provides CMA-ES optimization of the mutation parameters that
// make foragers learn fastest.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/forage/config"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// logRow is one line of optimize_log.csv.
type logRow struct {
	Eval                int     `csv:"eval"`
	Fitness             float64 `csv:"fitness"`
	Trend               float64 `csv:"trend"`
	MutationChance      float64 `csv:"mutation_chance"`
	MutationCoefficient float64 `csv:"mutation_coefficient"`
	ElapsedSec          float64 `csv:"elapsed_sec"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	generations := flag.Int("generations", 20, "Generations trained per evaluation")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 100, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		return errors.New("--output is required")
	}

	// Training runs log at info level every generation
	slog.SetLogLoggerLevel(slog.LevelWarn)

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	params := NewParamVector(baseCfg)

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, *generations, evalSeeds, baseCfg)

	dim := params.Dim()
	initX := params.Normalize(params.DefaultVector())

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation
	}

	popSize := *population
	if popSize == 0 {
		// Auto-size: 4 + floor(3*ln(n))
		popSize = 4 + int(3*math.Log(float64(dim)))
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("creating log: %w", err)
	}
	defer logFile.Close()
	csvWriter := gocsv.DefaultCSVWriter(logFile)

	evalCount := 0
	bestFitness := math.Inf(1)
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			// Clamped values are the ones actually used
			clamped := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(clamped)
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			elapsed := time.Since(startTime)
			row := []logRow{{
				Eval:                evalCount,
				Fitness:             fitness,
				Trend:               evaluator.LastTrend(),
				MutationChance:      clamped[0],
				MutationCoefficient: clamped[1],
				ElapsedSec:          elapsed.Seconds(),
			}}
			var werr error
			if evalCount == 1 {
				werr = gocsv.MarshalCSV(row, csvWriter)
			} else {
				werr = gocsv.MarshalCSVWithoutHeaders(row, csvWriter)
			}
			if werr != nil {
				log.Printf("failed to write log row: %v", werr)
			}

			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(*maxEvals-evalCount) * avgPerEval
			fmt.Printf("Eval %d/%d: food/animal=%.2f trend=%+.3f/gen (best=%.2f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, -fitness, evaluator.LastTrend(), -bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	fmt.Printf("Starting CMA-ES optimization with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, generations per run: %d\n", *seeds, *generations)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		return errors.New("no evaluation completed")
	}

	totalTime := time.Since(startTime)
	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(totalTime))
	fmt.Printf("Best food per animal: %.2f\n", -bestFitness)

	fmt.Println("\nBest parameters:")
	for i, path := range params.Paths() {
		fmt.Printf("  %s: %.6f\n", path, bestParams[i])
	}

	bestCfg := *baseCfg
	params.ApplyToConfig(&bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}

	// Save the generation history of the best run
	if history := evaluator.BestHistory(); history != nil {
		historyPath := filepath.Join(*outputDir, "best_history.json")
		data, err := json.MarshalIndent(history, "", "  ")
		if err != nil {
			log.Printf("failed to marshal history: %v", err)
		} else if err := os.WriteFile(historyPath, data, 0644); err != nil {
			log.Printf("failed to write history: %v", err)
		} else {
			fmt.Printf("Best run history saved to: %s\n", historyPath)
		}
	}
	return nil
}
