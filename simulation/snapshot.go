package simulation

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// WorldSnapshot is a serializable picture of the world for renderers and
// host bindings.
type WorldSnapshot struct {
	Animals []AnimalSnapshot `json:"animals"`
	Food    []FoodSnapshot   `json:"food"`
}

// AnimalSnapshot holds the visible state of one animal.
type AnimalSnapshot struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
	Speed   float64 `json:"speed"`
}

// FoodSnapshot holds the position of one food item.
type FoodSnapshot struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (w *World) snapshot() WorldSnapshot {
	snap := WorldSnapshot{
		Animals: make([]AnimalSnapshot, 0, len(w.animals)),
		Food:    make([]FoodSnapshot, 0, len(w.food)),
	}
	for _, e := range w.animals {
		pos := w.posMap.Get(e)
		motion := w.motionMap.Get(e)
		snap.Animals = append(snap.Animals, AnimalSnapshot{
			X:       pos.X,
			Y:       pos.Y,
			Heading: motion.Heading,
			Speed:   motion.Speed,
		})
	}
	for _, e := range w.food {
		pos := w.posMap.Get(e)
		snap.Food = append(snap.Food, FoodSnapshot{X: pos.X, Y: pos.Y})
	}
	return snap
}

// Nearest returns the index of the animal closest to p, measured across
// the wrapping edges, if one lies within maxDist.
func (s WorldSnapshot) Nearest(p r2.Vec, maxDist float64) (int, bool) {
	best, bestDist := -1, 0.0
	for i, a := range s.Animals {
		dx := math.Abs(a.X - p.X)
		dy := math.Abs(a.Y - p.Y)
		d := math.Hypot(min(dx, 1-dx), min(dy, 1-dy))
		if d <= maxDist && (best < 0 || d < bestDist) {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}
