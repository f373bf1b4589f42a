// Package renderer draws world snapshots with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/forage/camera"
	"github.com/pthm-cable/forage/simulation"
)

// World units
const (
	foodRadius   = 0.004
	animalLength = 0.012
	animalWing   = 2.5 // radians from heading to each rear corner
)

var (
	backgroundColor = rl.Color{R: 18, G: 22, B: 28, A: 255}
	foodColor       = rl.Color{R: 120, G: 200, B: 90, A: 255}
	animalColor     = rl.Color{R: 230, G: 170, B: 70, A: 255}
	bestColor       = rl.Color{R: 240, G: 90, B: 80, A: 255}
	visionColor     = rl.Color{R: 200, G: 200, B: 255, A: 60}
)

// WorldRenderer draws food as circles and animals as triangles pointing
// along their heading.
type WorldRenderer struct {
	cam *camera.Camera

	// ShowVision draws each animal's field of view.
	ShowVision bool
	fovAngle   float64
	fovRange   float64
}

// NewWorldRenderer creates a renderer drawing through cam. fovAngle and
// fovRange describe the animals' eye for the vision overlay.
func NewWorldRenderer(cam *camera.Camera, fovAngle, fovRange float64) *WorldRenderer {
	return &WorldRenderer{cam: cam, fovAngle: fovAngle, fovRange: fovRange}
}

// Draw renders snap. The animal at index best, if valid, is highlighted.
func (r *WorldRenderer) Draw(snap simulation.WorldSnapshot, best int) {
	rl.ClearBackground(backgroundColor)

	radius := max(r.cam.Scale(foodRadius), 1)
	for _, f := range snap.Food {
		p := r2.Vec{X: f.X, Y: f.Y}
		r.each(p, foodRadius, func(s camera.Point) {
			rl.DrawCircleV(rl.Vector2{X: s.X, Y: s.Y}, radius, foodColor)
		})
	}

	for i, a := range snap.Animals {
		p := r2.Vec{X: a.X, Y: a.Y}
		color := animalColor
		if i == best {
			color = bestColor
		}
		reach := animalLength
		if r.ShowVision {
			reach = max(reach, r.fovRange)
		}
		r.each(p, reach, func(s camera.Point) {
			if r.ShowVision {
				r.drawVision(s, a.Heading)
			}
			r.drawAnimal(s, a.Heading, color)
		})
	}
}

// each calls draw at the primary screen position of p and at every wrap
// ghost, skipping p entirely when it is off screen.
func (r *WorldRenderer) each(p r2.Vec, radius float64, draw func(camera.Point)) {
	if r.cam.IsVisible(p, radius) {
		draw(r.cam.WorldToScreen(p))
	}
	for _, g := range r.cam.Ghosts(p, radius) {
		draw(g)
	}
}

func (r *WorldRenderer) drawAnimal(s camera.Point, heading float64, color rl.Color) {
	l := float64(r.cam.Scale(animalLength))
	corner := func(angle, length float64) rl.Vector2 {
		return rl.Vector2{
			X: s.X + float32(math.Cos(angle)*length),
			Y: s.Y + float32(math.Sin(angle)*length),
		}
	}
	tip := corner(heading, l)
	left := corner(heading-animalWing, l*0.6)
	right := corner(heading+animalWing, l*0.6)
	rl.DrawTriangle(tip, left, right, color)
}

func (r *WorldRenderer) drawVision(s camera.Point, heading float64) {
	const rad2deg = 180 / math.Pi
	start := (heading - r.fovAngle/2) * rad2deg
	end := (heading + r.fovAngle/2) * rad2deg
	rl.DrawCircleSectorLines(
		rl.Vector2{X: s.X, Y: s.Y},
		r.cam.Scale(r.fovRange),
		float32(start), float32(end),
		24, visionColor,
	)
}
