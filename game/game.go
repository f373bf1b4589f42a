// Package game wires a simulation to its telemetry and, when not headless,
// to the raylib viewer.
package game

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/forage/camera"
	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/genetic"
	"github.com/pthm-cable/forage/inspector"
	"github.com/pthm-cable/forage/neural"
	"github.com/pthm-cable/forage/renderer"
	"github.com/pthm-cable/forage/simulation"
	"github.com/pthm-cable/forage/telemetry"
	"github.com/pthm-cable/forage/ui"
)

// Options configures a game.
type Options struct {
	Config        *config.Config // nil = config.Cfg()
	Seed          int64
	Headless      bool
	LogStats      bool
	OutputDir     string
	SnapshotEvery int // generations between world snapshots, 0 = config value
	Metrics       *telemetry.Metrics
	Store         *telemetry.Store // nil = no run database

	// GenerationCallback, if set, receives every completed generation.
	GenerationCallback func(telemetry.GenerationStats)
}

// Game owns a simulation, its random source, and everything that observes it.
type Game struct {
	cfg *config.Config
	rng *rand.Rand
	sim *simulation.Simulation

	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	metrics       *telemetry.Metrics
	store         *telemetry.Store
	runID         int64
	logStats      bool
	snapshotEvery int
	callback      func(telemetry.GenerationStats)

	generationStart time.Time
	generationTick  int64

	// Viewer state, nil when headless
	camera        *camera.Camera
	worldRenderer *renderer.WorldRenderer
	hud           *ui.HUD
	history       *ui.History
	inspector     *inspector.Inspector
	paused        bool
	ticksPerFrame int
	selected      int
	screenWidth   float32
	screenHeight  float32
}

// NewGameWithOptions creates a game with a fresh random simulation.
// The raylib window must already be open unless opts.Headless is set.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	runID, err := opts.Store.BeginRun(context.Background(), opts.Seed, cfg)
	if err != nil {
		om.Close()
		return nil, err
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	sim := simulation.Random(rng, cfg)
	sim.SetPerfCollector(perf)

	snapshotEvery := opts.SnapshotEvery
	if snapshotEvery == 0 {
		snapshotEvery = cfg.Telemetry.SnapshotEvery
	}

	g := &Game{
		cfg:             cfg,
		rng:             rng,
		sim:             sim,
		perfCollector:   perf,
		outputManager:   om,
		metrics:         opts.Metrics,
		store:           opts.Store,
		runID:           runID,
		logStats:        opts.LogStats,
		snapshotEvery:   snapshotEvery,
		callback:        opts.GenerationCallback,
		generationStart: time.Now(),
		selected:        -1,
	}

	if !opts.Headless {
		g.screenWidth = float32(cfg.Screen.Width)
		g.screenHeight = float32(cfg.Screen.Height)
		g.camera = camera.New(g.screenWidth, g.screenHeight)
		g.worldRenderer = renderer.NewWorldRenderer(g.camera, cfg.Eye.FOV, cfg.Eye.Range)
		g.hud = ui.NewHUD()
		g.history = ui.NewHistory(200)
		g.inspector = inspector.NewInspector(int32(g.screenWidth))
		g.ticksPerFrame = max(1, cfg.Screen.TicksPerFrame)
	}

	slog.Info("simulation created",
		"seed", opts.Seed,
		"animals", cfg.World.Animals,
		"food", cfg.World.Food,
		"generation_length", cfg.Evolution.GenerationLength,
		"selection", cfg.Evolution.Selection.String(),
		"weights", neural.WeightCount(neural.BrainTopology(cfg.Eye.Cells, cfg.Brain.Neurons)),
	)
	return g, nil
}

// Simulation returns the underlying simulation.
func (g *Game) Simulation() *simulation.Simulation { return g.sim }

// Tick returns the number of simulated ticks.
func (g *Game) Tick() int64 { return g.sim.Tick() }

// Generation returns the number of completed generations.
func (g *Game) Generation() int { return g.sim.Generation() }

// step advances one tick and handles a completed generation.
func (g *Game) step() {
	if stats := g.sim.Step(g.rng); stats != nil {
		g.onGeneration(*stats)
	}
}

// UpdateHeadless trains one full generation.
func (g *Game) UpdateHeadless() telemetry.GenerationStats {
	stats := g.sim.Train(g.rng)
	return g.onGeneration(stats)
}

// Update processes input and advances the simulation for one frame.
func (g *Game) Update() {
	g.handleInput()
	if g.paused {
		return
	}
	for range g.ticksPerFrame {
		g.step()
	}
}

// Unload stops workers and closes output files.
func (g *Game) Unload() {
	g.sim.Close()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// onGeneration records a completed generation in every sink.
func (g *Game) onGeneration(s genetic.Statistics) telemetry.GenerationStats {
	ticks := g.sim.Tick() - g.generationTick
	stats := telemetry.NewGenerationStats(
		g.sim.Generation(), g.sim.Tick(), s, g.sim.GenerationFitness(), time.Since(g.generationStart),
	)
	g.generationStart = time.Now()
	g.generationTick = g.sim.Tick()
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteGeneration(stats); err != nil {
		slog.Error("failed to write generation", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, g.sim.Tick()); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
	if err := g.store.SaveGeneration(context.Background(), g.runID, stats); err != nil {
		slog.Error("failed to store generation", "error", err)
	}
	if g.snapshotEvery > 0 && stats.Generation%g.snapshotEvery == 0 {
		if err := g.outputManager.WriteSnapshot(stats.Generation, g.sim.World()); err != nil {
			slog.Error("failed to write snapshot", "error", err)
		}
	}

	g.metrics.ObserveGeneration(stats, int(ticks))
	g.metrics.ObservePerf(perfStats)

	if g.history != nil {
		g.history.Push(s)
	}
	g.selected = -1
	if g.callback != nil {
		g.callback(stats)
	}
	return stats
}

// Draw renders the world and the HUD.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()

	snap := g.sim.World()
	g.worldRenderer.Draw(snap, g.selected)

	act := g.hud.Draw(ui.HUDData{
		Generation:       g.sim.Generation(),
		Age:              g.sim.Age(),
		GenerationLength: g.cfg.Evolution.GenerationLength,
		Tick:             g.sim.Tick(),
		Animals:          len(snap.Animals),
		Food:             len(snap.Food),
		TicksPerFrame:    g.ticksPerFrame,
		FPS:              rl.GetFPS(),
		Paused:           g.paused,
		ShowVision:       g.worldRenderer.ShowVision,
		History:          g.history,
	})
	g.hud.DrawControls(int32(g.screenHeight))

	if g.selected >= 0 && g.selected < len(snap.Animals) {
		g.inspector.Draw(g.selected, g.sim.Animals()[g.selected], g.sim.Vision(g.selected))
	}

	rl.EndDrawing()

	g.apply(act)
}

// apply performs the HUD actions after the frame is drawn.
func (g *Game) apply(act ui.Actions) {
	g.ticksPerFrame = act.TicksPerFrame
	if act.TogglePause {
		g.paused = !g.paused
	}
	if act.ToggleVision {
		g.worldRenderer.ShowVision = !g.worldRenderer.ShowVision
	}
	if act.Train {
		g.UpdateHeadless()
	}
}
