// Package components defines ECS components for the simulation.
package components

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/forage/neural"
)

// Position represents an entity's location on the unit torus.
type Position struct {
	X, Y float64
}

// Vec returns the position as a vector.
func (p Position) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Motion holds an animal's heading (radians) and speed (world units per tick).
type Motion struct {
	Heading float64
	Speed   float64
}

// Mind bundles an animal's sensor and controller.
type Mind struct {
	Eye   neural.Eye
	Brain *neural.Brain
}

// Fitness counts food collected during the current generation.
type Fitness struct {
	Collisions int
}

// Edible marks food entities.
type Edible struct{}
