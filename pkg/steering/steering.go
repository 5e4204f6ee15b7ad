// Package steering implements classical steering behaviors as pure functions
// over kinematic snapshots. Every function returns a desired velocity; none of
// them mutate a body. Applying the result is left to the caller.
package steering

import (
	"math"

	"github.com/opd-ai/go-steering/pkg/physics"
)

// Seek returns a full-speed velocity pointing from self straight at target.
func Seek(self physics.Kinematic, target physics.Vector2D) physics.Vector2D {
	return target.Sub(self.Position).Normalize().Scale(self.MaxSpeed)
}

// Flee returns a full-speed velocity pointing directly away from target.
func Flee(self physics.Kinematic, target physics.Vector2D) physics.Vector2D {
	return self.Position.Sub(target).Normalize().Scale(self.MaxSpeed)
}

// Arrive seeks target but scales the speed linearly from MaxSpeed at
// slowingRadius down to zero at the target itself. A non-positive radius
// disables slowing.
func Arrive(self physics.Kinematic, target physics.Vector2D, slowingRadius float64) physics.Vector2D {
	offset := target.Sub(self.Position)
	distance := offset.Length()
	if distance < physics.Epsilon {
		return physics.Vector2D{}
	}

	ramp := 1.0
	if slowingRadius > 0 {
		ramp = math.Min(1, distance/slowingRadius)
	}
	return offset.Scale(1 / distance).Scale(self.MaxSpeed * ramp)
}
