package steering

import "github.com/opd-ai/go-steering/pkg/physics"

// ClosingLookAhead is the prediction horizon in seconds used when the other
// body is driving straight at us or we cannot move at all.
const ClosingLookAhead = 0.1

// closingCos is cos(18°): headings within this cone count as head-on.
const closingCos = 0.95

// Pursue seeks the point where quarry will be after the look-ahead time.
// A stationary quarry is sought exactly where it stands.
func Pursue(hunter, quarry physics.Kinematic) physics.Vector2D {
	return Seek(hunter, Predict(hunter, quarry))
}

// Evade flees from the point where pursuer will be after the look-ahead time.
func Evade(self, pursuer physics.Kinematic) physics.Vector2D {
	return Flee(self, Predict(self, pursuer))
}

// Predict extrapolates other's position linearly over LookAhead(self, other).
func Predict(self, other physics.Kinematic) physics.Vector2D {
	return other.Position.Add(other.Velocity.Scale(LookAhead(self, other)))
}

// LookAhead estimates how many seconds self needs to cover the distance to
// other at full speed. When other is closing head-on, or self has no speed,
// the short ClosingLookAhead horizon is used instead.
func LookAhead(self, other physics.Kinematic) float64 {
	offset := other.Position.Sub(self.Position)
	if self.MaxSpeed <= 0 {
		return ClosingLookAhead
	}
	toSelf := offset.Negate().Normalize()
	if !toSelf.IsZero() && other.Heading.Dot(toSelf) > closingCos {
		return ClosingLookAhead
	}
	return offset.Length() / self.MaxSpeed
}
