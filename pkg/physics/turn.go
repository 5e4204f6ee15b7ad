package physics

import "math"

// LimitTurn rotates the direction of current toward desired by at most
// maxAngle radians and returns a vector along that direction with desired's
// magnitude. If current has no direction, or the turn fits within maxAngle,
// desired is returned unchanged.
func LimitTurn(current, desired Vector2D, maxAngle float64) Vector2D {
	if current.IsZero() || desired.IsZero() {
		return desired
	}
	delta := current.SignedDelta(desired)
	if math.Abs(delta) <= maxAngle {
		return desired
	}
	step := math.Copysign(math.Max(0, maxAngle), delta)
	return current.Normalize().Rotate(step).Scale(desired.Length())
}
