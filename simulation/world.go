package simulation

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/genetic"
	"github.com/pthm-cable/forage/neural"
)

// Animal is a read-only view of one animal.
type Animal struct {
	Entity     ecs.Entity
	Position   components.Position
	Motion     components.Motion
	Collisions int
	Brain      *neural.Brain
}

// World owns the animals and food. Entity storage lives in the ECS world;
// the entity slices keep creation order, which fixes the order in which
// animals and food consume randomness.
type World struct {
	ecs *ecs.World

	animalMapper *ecs.Map4[components.Position, components.Motion, components.Mind, components.Fitness]
	foodMapper   *ecs.Map2[components.Position, components.Edible]

	posMap    *ecs.Map1[components.Position]
	motionMap *ecs.Map1[components.Motion]
	mindMap   *ecs.Map1[components.Mind]
	fitMap    *ecs.Map1[components.Fitness]

	animals []ecs.Entity
	food    []ecs.Entity

	eye     neural.Eye
	neurons int
	speed   float64 // initial speed of every new animal
}

// newWorld creates a world with random animals and food.
func newWorld(rng *rand.Rand, cfg *config.Config) *World {
	w := ecs.NewWorld()
	world := &World{
		ecs: w,
		animalMapper: ecs.NewMap4[
			components.Position,
			components.Motion,
			components.Mind,
			components.Fitness,
		](w),
		foodMapper: ecs.NewMap2[components.Position, components.Edible](w),
		posMap:     ecs.NewMap1[components.Position](w),
		motionMap:  ecs.NewMap1[components.Motion](w),
		mindMap:    ecs.NewMap1[components.Mind](w),
		fitMap:     ecs.NewMap1[components.Fitness](w),
		eye:        neural.NewEye(cfg.Eye.Range, cfg.Eye.FOV, cfg.Eye.Cells),
		neurons:    cfg.Brain.Neurons,
		speed:      cfg.Motion.SpeedMin,
	}

	world.animals = make([]ecs.Entity, 0, cfg.World.Animals)
	for range cfg.World.Animals {
		brain := neural.NewRandomBrain(rng, world.eye.Cells(), world.neurons)
		world.spawnAnimal(rng, brain)
	}

	world.food = make([]ecs.Entity, 0, cfg.World.Food)
	for range cfg.World.Food {
		pos := randomPosition(rng)
		world.food = append(world.food, world.foodMapper.NewEntity(&pos, &components.Edible{}))
	}

	return world
}

// spawnAnimal places an animal with the given brain at a random position
// and heading.
func (w *World) spawnAnimal(rng *rand.Rand, brain *neural.Brain) {
	pos := randomPosition(rng)
	motion := components.Motion{
		Heading: neural.WrapAngle(rng.Float64() * 2 * math.Pi),
		Speed:   w.speed,
	}
	mind := components.Mind{Eye: w.eye, Brain: brain}
	fit := components.Fitness{}

	w.animals = append(w.animals, w.animalMapper.NewEntity(&pos, &motion, &mind, &fit))
}

// replaceAnimals removes every animal and spawns one per chromosome, in order.
func (w *World) replaceAnimals(rng *rand.Rand, chromosomes []genetic.Chromosome) {
	for _, e := range w.animals {
		w.ecs.RemoveEntity(e)
	}
	w.animals = w.animals[:0]

	for _, c := range chromosomes {
		brain := neural.BrainFromWeights(w.eye.Cells(), w.neurons, c.Genes())
		w.spawnAnimal(rng, brain)
	}
}

// relocateFood moves every food item to a random position.
func (w *World) relocateFood(rng *rand.Rand) {
	for _, e := range w.food {
		*w.posMap.Get(e) = randomPosition(rng)
	}
}

func randomPosition(rng *rand.Rand) components.Position {
	x := rng.Float64()
	y := rng.Float64()
	return components.Position{X: x, Y: y}
}

// Animals returns a view of every animal in creation order.
func (w *World) Animals() []Animal {
	out := make([]Animal, len(w.animals))
	for i, e := range w.animals {
		out[i] = Animal{
			Entity:     e,
			Position:   *w.posMap.Get(e),
			Motion:     *w.motionMap.Get(e),
			Collisions: w.fitMap.Get(e).Collisions,
			Brain:      w.mindMap.Get(e).Brain,
		}
	}
	return out
}

// Food returns every food position in creation order.
func (w *World) Food() []components.Position {
	out := make([]components.Position, len(w.food))
	for i, e := range w.food {
		out[i] = *w.posMap.Get(e)
	}
	return out
}

// foodVecs appends the food positions to dst.
func (w *World) foodVecs(dst []r2.Vec) []r2.Vec {
	for _, e := range w.food {
		dst = append(dst, w.posMap.Get(e).Vec())
	}
	return dst
}

// vision returns what the i-th animal currently sees.
func (w *World) vision(i int) []float64 {
	e := w.animals[i]
	mind := w.mindMap.Get(e)
	return mind.Eye.ProcessVision(w.posMap.Get(e).Vec(), w.motionMap.Get(e).Heading, w.foodVecs(nil))
}
