package neural

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Eye converts nearby food into per-cell energy readings across a
// field of view centred on the owner's heading.
type Eye struct {
	fovRange float64
	fovAngle float64
	cells    int
}

// NewEye returns an Eye. All parameters must be positive.
func NewEye(fovRange, fovAngle float64, cells int) Eye {
	if !(fovRange > 0) || !(fovAngle > 0) || cells <= 0 {
		panic(fmt.Sprintf("neural: invalid eye range=%v angle=%v cells=%d", fovRange, fovAngle, cells))
	}
	return Eye{fovRange: fovRange, fovAngle: fovAngle, cells: cells}
}

// Cells returns the length of every vision vector.
func (e Eye) Cells() int { return e.cells }

// FOVRange returns the sight distance.
func (e Eye) FOVRange() float64 { return e.fovRange }

// FOVAngle returns the angular width of the field of view.
func (e Eye) FOVAngle() float64 { return e.fovAngle }

// ProcessVision returns the vision vector for an observer at pos facing
// heading. Each visible food item adds (range - distance) / range to the
// cell covering its bearing; readings are not normalized.
func (e Eye) ProcessVision(pos r2.Vec, heading float64, food []r2.Vec) []float64 {
	cells := make([]float64, e.cells)
	half := e.fovAngle / 2

	for _, f := range food {
		v := r2.Sub(f, pos)
		dist := r2.Norm(v)
		if dist >= e.fovRange {
			continue
		}

		angle := WrapAngle(math.Atan2(v.Y, v.X) - heading)
		if angle < -half || angle > half {
			continue
		}

		cell := int(math.Floor((angle + half) / e.fovAngle * float64(e.cells)))
		cell = min(cell, e.cells-1)
		cells[cell] += (e.fovRange - dist) / e.fovRange
	}

	return cells
}

// WrapAngle maps an angle into (-π, π].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
