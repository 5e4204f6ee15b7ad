package physics

// Kinematic is a read-only copy of a Body's state taken at one instant.
// Steering algorithms receive Kinematic values, so they cannot mutate the
// body they are steering.
type Kinematic struct {
	Position        Vector2D
	Velocity        Vector2D
	Heading         Vector2D
	SteeringTarget  Vector2D
	Course          float64
	Speed           float64
	Mass            float64
	Maneuverability float64
	MaxTurn         float64
	MinSpeed        float64
	MaxSpeed        float64
}

// Forward returns the unit heading, falling back to the course direction
// when the body is stopped and its heading is the zero vector.
func (k Kinematic) Forward() Vector2D {
	if !k.Heading.IsZero() {
		return k.Heading
	}
	return FromCourse(k.Course, 1)
}
