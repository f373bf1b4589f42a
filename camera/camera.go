// Package camera maps the toroidal unit-square world onto the screen.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in screen pixels.
type Point struct {
	X, Y float32
}

// Camera controls the viewport into the world. The world is the unit
// square with wrapping edges; at zoom 1 it exactly fills the shorter
// viewport side.
type Camera struct {
	// Center of the view in world coordinates
	X, Y float64

	// Zoom level (1.0 = whole world, 2.0 = half the world)
	Zoom float64

	// Viewport dimensions in pixels
	ViewportW, ViewportH float32

	MinZoom, MaxZoom float64
}

// New creates a camera centered on the world showing all of it.
func New(viewportW, viewportH float32) *Camera {
	return &Camera{
		X:         0.5,
		Y:         0.5,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   1.0,
		MaxZoom:   8.0,
	}
}

// PixelsPerUnit returns how many pixels one world unit spans.
func (c *Camera) PixelsPerUnit() float64 {
	return float64(min(c.ViewportW, c.ViewportH)) * c.Zoom
}

// WorldToScreen converts a world position to screen coordinates using the
// shortest toroidal offset from the camera center.
func (c *Camera) WorldToScreen(p r2.Vec) Point {
	ppu := c.PixelsPerUnit()
	dx := toroidalDelta(p.X, c.X)
	dy := toroidalDelta(p.Y, c.Y)
	return Point{
		X: c.ViewportW/2 + float32(dx*ppu),
		Y: c.ViewportH/2 + float32(dy*ppu),
	}
}

// ScreenToWorld converts screen coordinates to a world position in [0, 1).
func (c *Camera) ScreenToWorld(s Point) r2.Vec {
	ppu := c.PixelsPerUnit()
	dx := float64(s.X-c.ViewportW/2) / ppu
	dy := float64(s.Y-c.ViewportH/2) / ppu
	return r2.Vec{X: wrap(c.X + dx), Y: wrap(c.Y + dy)}
}

// Scale converts a world distance to pixels.
func (c *Camera) Scale(d float64) float32 {
	return float32(d * c.PixelsPerUnit())
}

// halfExtents returns half the visible area in world units.
func (c *Camera) halfExtents() (float64, float64) {
	ppu := c.PixelsPerUnit()
	return float64(c.ViewportW) / (2 * ppu), float64(c.ViewportH) / (2 * ppu)
}

// IsVisible reports whether a circle at p with the given world radius
// could touch the screen.
func (c *Camera) IsVisible(p r2.Vec, radius float64) bool {
	halfW, halfH := c.halfExtents()
	dx := toroidalDelta(p.X, c.X)
	dy := toroidalDelta(p.Y, c.Y)
	return math.Abs(dx) <= halfW+radius && math.Abs(dy) <= halfH+radius
}

// Ghosts returns the extra screen positions at which a circle near a
// visible world edge must also be drawn so it appears on both sides.
func (c *Camera) Ghosts(p r2.Vec, radius float64) []Point {
	halfW, halfH := c.halfExtents()
	ppu := c.PixelsPerUnit()
	dx := toroidalDelta(p.X, c.X)
	dy := toroidalDelta(p.Y, c.Y)

	xs := wrapShifts(dx, halfW+radius)
	ys := wrapShifts(dy, halfH+radius)

	var ghosts []Point
	for _, ox := range xs {
		for _, oy := range ys {
			if ox == 0 && oy == 0 {
				continue
			}
			ghosts = append(ghosts, Point{
				X: c.ViewportW/2 + float32((dx+ox)*ppu),
				Y: c.ViewportH/2 + float32((dy+oy)*ppu),
			})
		}
	}
	return ghosts
}

// wrapShifts returns the world offsets (0 first) at which a coordinate d
// lies within reach of the view center.
func wrapShifts(d, reach float64) []float64 {
	shifts := []float64{0}
	if math.Abs(d-1) <= reach {
		shifts = append(shifts, -1)
	}
	if math.Abs(d+1) <= reach {
		shifts = append(shifts, 1)
	}
	return shifts
}

// Resize updates the viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels, wrapping
// around the world edges.
func (c *Camera) Pan(dx, dy float32) {
	ppu := c.PixelsPerUnit()
	c.X = wrap(c.X + float64(dx)/ppu)
	c.Y = wrap(c.Y + float64(dy)/ppu)
}

// SetZoom sets the zoom level, clamped to [MinZoom, MaxZoom].
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = max(c.MinZoom, min(zoom, c.MaxZoom))
}

// ZoomBy multiplies the current zoom by factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = 0.5
	c.Y = 0.5
	c.Zoom = 1.0
}

// toroidalDelta returns the shortest signed offset from 'from' to 'to' on
// the unit circle.
func toroidalDelta(to, from float64) float64 {
	d := to - from
	if d > 0.5 {
		d -= 1
	} else if d < -0.5 {
		d += 1
	}
	return d
}

// wrap maps x into [0, 1).
func wrap(x float64) float64 {
	r := math.Mod(x, 1)
	if r < 0 {
		r += 1
	}
	if r >= 1 {
		r = 0
	}
	return r
}
