package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/forage/components"
)

// CollisionSystem credits animals for touching food and relocates eaten food.
type CollisionSystem struct {
	radius float64
	posMap *ecs.Map1[components.Position]
	fitMap *ecs.Map1[components.Fitness]
}

// NewCollisionSystem creates a collision system with the given pickup radius.
func NewCollisionSystem(w *ecs.World, radius float64) *CollisionSystem {
	return &CollisionSystem{
		radius: radius,
		posMap: ecs.NewMap1[components.Position](w),
		fitMap: ecs.NewMap1[components.Fitness](w),
	}
}

// Update checks every animal against every food item in the given order and
// returns the number of collisions. Food is relocated as soon as it is hit, so
// later animals see the new position and a crowded item can be eaten (and
// moved) more than once per tick. Distances are planar, not toroidal.
func (s *CollisionSystem) Update(rng *rand.Rand, animals, food []ecs.Entity) int {
	hits := 0
	for _, a := range animals {
		apos := s.posMap.Get(a)
		fit := s.fitMap.Get(a)

		for _, f := range food {
			fpos := s.posMap.Get(f)
			if math.Hypot(apos.X-fpos.X, apos.Y-fpos.Y) > s.radius {
				continue
			}
			fit.Collisions++
			hits++
			fpos.X = rng.Float64()
			fpos.Y = rng.Float64()
		}
	}
	return hits
}
