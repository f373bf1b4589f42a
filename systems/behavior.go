package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/neural"
)

// MotionLimits bounds how an animal may change its motion in one tick.
type MotionLimits struct {
	SpeedMin   float64
	SpeedMax   float64
	SpeedAccel float64
	RotAccel   float64
}

// Steer runs an animal's sensor and brain and returns its updated motion.
// It reads only its arguments, so it is safe to call concurrently.
func Steer(mind components.Mind, pos components.Position, motion components.Motion, food []r2.Vec, limits MotionLimits) components.Motion {
	vision := mind.Eye.ProcessVision(pos.Vec(), motion.Heading, food)
	speed, rotation := mind.Brain.Think(vision)

	speed = clamp(speed, -limits.SpeedAccel, limits.SpeedAccel)
	rotation = clamp(rotation, -limits.RotAccel, limits.RotAccel)

	return components.Motion{
		Heading: neural.WrapAngle(motion.Heading + rotation),
		Speed:   clamp(motion.Speed+speed, limits.SpeedMin, limits.SpeedMax),
	}
}
