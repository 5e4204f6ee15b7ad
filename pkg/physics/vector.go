// pkg/physics/vector.go
package physics

import (
	"fmt"
	"math"
)

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-9

// Vector2D represents a 2D vector with x and y components.
// X grows east and Y grows north, so bearings and rotations follow compass
// conventions: 0 is north (up) and positive angles turn clockwise.
type Vector2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Deg2Rad converts degrees to radians
func Deg2Rad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Rad2Deg converts radians to degrees
func Rad2Deg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// FromCourse creates a vector of the given magnitude pointing along a compass
// course in degrees.
func FromCourse(degrees float64, magnitude float64) Vector2D {
	rad := Deg2Rad(degrees)
	return Vector2D{
		X: magnitude * math.Sin(rad),
		Y: magnitude * math.Cos(rad),
	}
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Negate returns the vector pointing the opposite way
func (v Vector2D) Negate() Vector2D {
	return Vector2D{X: -v.X, Y: -v.Y}
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// IsZero reports whether the vector is shorter than Epsilon.
func (v Vector2D) IsZero() bool {
	return v.Length() < Epsilon
}

// Normalize returns a unit vector in the same direction.
// A zero vector normalizes to the zero vector.
func (v Vector2D) Normalize() Vector2D {
	length := v.Length()
	if length < Epsilon {
		return Vector2D{}
	}
	return Vector2D{
		X: v.X / length,
		Y: v.Y / length,
	}
}

// Truncate returns the vector scaled down to maxLength if it is longer;
// otherwise the vector is returned unchanged.
func (v Vector2D) Truncate(maxLength float64) Vector2D {
	if maxLength <= 0 {
		return Vector2D{}
	}
	length := v.Length()
	if length <= maxLength {
		return v
	}
	return v.Scale(maxLength / length)
}

// Distance returns the distance between two vectors
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// Dot returns the dot product of two vectors
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the z component of the 3D cross product
func (v Vector2D) Cross(other Vector2D) float64 {
	return v.X*other.Y - v.Y*other.X
}

// Rotate rotates the vector clockwise by angle (in radians).
// Rotating north (0,1) by +π/2 yields east (1,0).
func (v Vector2D) Rotate(angle float64) Vector2D {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vector2D{
		X: v.X*cos + v.Y*sin,
		Y: -v.X*sin + v.Y*cos,
	}
}

// Delta returns the unsigned angle in radians, within [0, π], between the
// directions of v and other. Zero vectors have no direction and yield 0.
func (v Vector2D) Delta(other Vector2D) float64 {
	a := v.Normalize()
	b := other.Normalize()
	if a.IsZero() || b.IsZero() {
		return 0
	}
	// Clamp guards acos against rounding just outside [-1, 1].
	return math.Acos(math.Max(-1, math.Min(1, a.Dot(b))))
}

// SignedDelta returns the shortest signed angle in radians from v to other.
// The result is positive when other lies clockwise of v.
func (v Vector2D) SignedDelta(other Vector2D) float64 {
	if v.IsZero() || other.IsZero() {
		return 0
	}
	delta := -math.Atan2(v.Cross(other), v.Dot(other))
	if delta <= -math.Pi {
		return math.Pi
	}
	return delta
}

// CompassBearing returns the direction of the vector in degrees clockwise
// from north, within [0, 360). The zero vector has bearing 0.
func (v Vector2D) CompassBearing() float64 {
	if v.IsZero() {
		return 0
	}
	return NormalizeDegrees(Rad2Deg(math.Atan2(v.X, v.Y)))
}

// ApproxEqual reports whether both components are within tolerance.
func (v Vector2D) ApproxEqual(other Vector2D, tolerance float64) bool {
	return math.Abs(v.X-other.X) <= tolerance && math.Abs(v.Y-other.Y) <= tolerance
}

// String implements fmt.Stringer
func (v Vector2D) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y)
}

// NormalizeDegrees wraps an angle in degrees into [0, 360).
func NormalizeDegrees(degrees float64) float64 {
	wrapped := math.Mod(degrees, 360)
	if wrapped < 0 {
		wrapped += 360
	}
	// -0.0000001 wraps to 360 after the addition above
	if wrapped >= 360 {
		wrapped = 0
	}
	return wrapped
}
