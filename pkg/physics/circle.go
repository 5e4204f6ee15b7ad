// pkg/physics/circle.go
package physics

// Circle is a circular zone around a point, used for arrival and capture
// checks.
type Circle struct {
	Center Vector2D
	Radius float64
}

// Contains reports whether point lies inside or on the circle.
func (c Circle) Contains(point Vector2D) bool {
	return c.Center.Distance(point) <= c.Radius
}

// Collides checks if two circles are overlapping
func (c Circle) Collides(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}
