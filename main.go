package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/game"
	"github.com/pthm-cable/forage/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output per-generation stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config and snapshots")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	generations := flag.Int("generations", 0, "Stop after N generations (0 = unlimited)")
	snapshotEvery := flag.Int("snapshot-every", 0, "Write a world snapshot every N generations (0 = use config)")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	dbPath := flag.String("db", "", "Record runs and generations in this SQLite database")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var metrics *telemetry.Metrics
	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics = telemetry.NewMetrics(reg)
		go serveMetrics(*metricsAddr, reg)
	}

	store, err := telemetry.OpenStore(context.Background(), *dbPath)
	if err != nil {
		slog.Error("failed to open run database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	opts := game.Options{
		Config:        cfg,
		Seed:          rngSeed,
		Headless:      *headless,
		LogStats:      *logStats,
		OutputDir:     *outputDir,
		SnapshotEvery: *snapshotEvery,
		Metrics:       metrics,
		Store:         store,
	}

	if *headless {
		// Headless mode - pure CPU training, no raylib needed
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			return
		}
		defer g.Unload()

		slog.Info("starting headless training",
			"seed", rngSeed,
			"generations", *generations,
		)

		for *generations == 0 || g.Generation() < *generations {
			g.UpdateHeadless()
		}
		slog.Info("generation limit reached", "generation", g.Generation(), "tick", g.Tick())
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "forage")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *generations > 0 && g.Generation() >= *generations {
			break
		}
	}
}

// serveMetrics exposes reg on addr until the process exits.
func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	slog.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("metrics server stopped", "error", err)
	}
}
