package steering

import (
	"math"

	"github.com/opd-ai/go-steering/pkg/physics"
)

// Align steers onto the target's heading while keeping self's speed.
func Align(self, target physics.Kinematic) physics.Vector2D {
	return target.Forward().Scale(self.Speed)
}

// MatchVelocity copies the target's velocity, heading and speed alike.
func MatchVelocity(self, target physics.Kinematic) physics.Vector2D {
	return target.Velocity
}

// Broadside steers the hunter perpendicular to the line toward the quarry,
// picking whichever perpendicular needs the smaller turn. The hunter keeps
// its current speed.
func Broadside(hunter, quarry physics.Kinematic) physics.Vector2D {
	toQuarry := quarry.Position.Sub(hunter.Position).Normalize()
	return perpendicularApproach(hunter, toQuarry)
}

// OrthogonalIntercept is Broadside measured against the predicted intercept
// point rather than the quarry's current position. For a stationary quarry
// the two are identical.
func OrthogonalIntercept(hunter, quarry physics.Kinematic) physics.Vector2D {
	toIntercept := Predict(hunter, quarry).Sub(hunter.Position).Normalize()
	return perpendicularApproach(hunter, toIntercept)
}

// perpendicularApproach rotates line by +90° and +270° (clockwise) and
// returns the candidate closest to the hunter's heading, scaled to its speed.
// Ties go to the +270° candidate.
func perpendicularApproach(hunter physics.Kinematic, line physics.Vector2D) physics.Vector2D {
	optionA := line.Rotate(math.Pi / 2)
	optionB := line.Rotate(3 * math.Pi / 2)

	heading := hunter.Forward()
	best := optionB
	if optionA.Delta(heading) < optionB.Delta(heading) {
		best = optionA
	}
	return best.Scale(hunter.Velocity.Length())
}
