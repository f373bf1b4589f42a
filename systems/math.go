package systems

import "math"

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// wrapUnit wraps a coordinate onto the unit torus [0, 1).
func wrapUnit(v float64) float64 {
	v = math.Mod(v, 1)
	if v < 0 {
		v++
	}
	// Adding 1 to a tiny negative remainder rounds up to exactly 1.
	if v >= 1 {
		v = 0
	}
	return v
}
