// Package simulation runs a population of foraging animals whose brains are
// evolved by a genetic algorithm between fixed-length generations.
package simulation

import (
	"math/rand"

	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/genetic"
	"github.com/pthm-cable/forage/systems"
	"github.com/pthm-cable/forage/telemetry"
)

// Simulation advances a World tick by tick and evolves its animals whenever
// a generation ends. All randomness comes from the *rand.Rand passed to
// each call, so a seed reproduces a run exactly.
type Simulation struct {
	cfg   *config.Config
	world *World
	ga    *genetic.GeneticAlgorithm[*AnimalIndividual]

	collisions *systems.CollisionSystem
	movement   *systems.MovementSystem
	parallel   *parallelState

	age        int   // ticks into the current generation
	generation int   // completed generations
	tick       int64 // ticks since creation

	lastFitness []float64
	perf        *telemetry.PerfCollector
}

// Random creates a simulation with a random world. cfg must be valid and
// must not be modified while the simulation is in use.
func Random(rng *rand.Rand, cfg *config.Config) *Simulation {
	world := newWorld(rng, cfg)

	limits := systems.MotionLimits{
		SpeedMin:   cfg.Motion.SpeedMin,
		SpeedMax:   cfg.Motion.SpeedMax,
		SpeedAccel: cfg.Motion.SpeedAccel,
		RotAccel:   cfg.Motion.RotAccel,
	}

	return &Simulation{
		cfg:   cfg,
		world: world,
		ga: genetic.New(
			cfg.Evolution.Selection,
			cfg.Evolution.Crossover,
			cfg.Evolution.Mutation,
			NewAnimalIndividual,
		),
		collisions: systems.NewCollisionSystem(world.ecs, cfg.World.CollisionRadius),
		movement:   systems.NewMovementSystem(world.ecs),
		parallel:   newParallelState(cfg.Simulation.Workers, limits),
	}
}

// SetPerfCollector enables per-phase timing. A nil collector disables it.
func (s *Simulation) SetPerfCollector(p *telemetry.PerfCollector) {
	s.perf = p
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() *config.Config { return s.cfg }

// Age returns the number of ticks into the current generation.
func (s *Simulation) Age() int { return s.age }

// Generation returns the number of completed generations.
func (s *Simulation) Generation() int { return s.generation }

// Tick returns the number of ticks since the simulation was created.
func (s *Simulation) Tick() int64 { return s.tick }

// Animals returns a view of every animal in creation order.
func (s *Simulation) Animals() []Animal { return s.world.Animals() }

// World returns a snapshot of every animal and food position.
func (s *Simulation) World() WorldSnapshot { return s.world.snapshot() }

// Vision returns the eye readings of the i-th animal, as fed to its brain
// on the next tick.
func (s *Simulation) Vision(i int) []float64 { return s.world.vision(i) }

// GenerationFitness returns the per-animal fitness of the last completed
// generation, or nil before the first one ends.
func (s *Simulation) GenerationFitness() []float64 { return s.lastFitness }

// Step advances one tick. It returns the statistics of the outgoing
// generation when the tick ends one, and nil otherwise.
func (s *Simulation) Step(rng *rand.Rand) *genetic.Statistics {
	s.perf.StartTick()
	defer s.perf.EndTick()

	s.perf.StartPhase(telemetry.PhaseCollisions)
	s.collisions.Update(rng, s.world.animals, s.world.food)

	s.perf.StartPhase(telemetry.PhaseBrain)
	s.updateBrains()

	s.perf.StartPhase(telemetry.PhaseMovement)
	s.movement.Update()

	s.age++
	s.tick++

	if s.age > s.cfg.Evolution.GenerationLength {
		s.perf.StartPhase(telemetry.PhaseEvolution)
		stats := s.evolve(rng)
		return &stats
	}
	return nil
}

// Train steps until the current generation ends and returns its statistics.
func (s *Simulation) Train(rng *rand.Rand) genetic.Statistics {
	for {
		if stats := s.Step(rng); stats != nil {
			return *stats
		}
	}
}

// Close stops the brain pass workers.
func (s *Simulation) Close() {
	s.parallel.stopWorkers()
}
