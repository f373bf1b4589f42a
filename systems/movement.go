// Package systems contains ECS systems for the simulation.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/forage/components"
)

// MovementSystem advances animals along their heading.
type MovementSystem struct {
	filter ecs.Filter2[components.Position, components.Motion]
}

// NewMovementSystem creates a new movement system.
func NewMovementSystem(w *ecs.World) *MovementSystem {
	return &MovementSystem{
		filter: *ecs.NewFilter2[components.Position, components.Motion](w),
	}
}

// Update moves every entity with a Motion by its speed, wrapping around the
// unit torus.
func (s *MovementSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		pos, motion := query.Get()
		pos.X = wrapUnit(pos.X + math.Cos(motion.Heading)*motion.Speed)
		pos.Y = wrapUnit(pos.Y + math.Sin(motion.Heading)*motion.Speed)
	}
}
