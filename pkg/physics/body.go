// pkg/physics/body.go
package physics

import (
	"fmt"
	"math"
)

// BodyConfig holds the construction parameters of a Body.
// Distances are meters, speeds meters per second, Course is in true degrees
// (0 is north) and MaxTurn is in radians per second.
type BodyConfig struct {
	X               float64
	Y               float64
	Course          float64
	Speed           float64
	Mass            float64
	Maneuverability float64
	MaxTurn         float64
	MinSpeed        float64
	MaxSpeed        float64
}

// Validate reports the first physical limit that cannot describe a real body.
func (c BodyConfig) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"x", c.X}, {"y", c.Y}, {"course", c.Course}, {"speed", c.Speed},
		{"mass", c.Mass}, {"maneuverability", c.Maneuverability},
		{"max_turn", c.MaxTurn}, {"min_speed", c.MinSpeed}, {"max_speed", c.MaxSpeed},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &ConfigError{Field: f.name, Value: f.value, Reason: "must be finite"}
		}
	}

	switch {
	case c.Mass < 0:
		return &ConfigError{Field: "mass", Value: c.Mass, Reason: "must not be negative"}
	case c.Maneuverability < 0:
		return &ConfigError{Field: "maneuverability", Value: c.Maneuverability, Reason: "must not be negative"}
	case c.MaxTurn < 0:
		return &ConfigError{Field: "max_turn", Value: c.MaxTurn, Reason: "must not be negative"}
	case c.MinSpeed < 0:
		return &ConfigError{Field: "min_speed", Value: c.MinSpeed, Reason: "must not be negative"}
	case c.MaxSpeed < c.MinSpeed:
		return &ConfigError{
			Field:  "max_speed",
			Value:  c.MaxSpeed,
			Reason: fmt.Sprintf("must not be below min_speed %g", c.MinSpeed),
		}
	case c.Speed < c.MinSpeed || c.Speed > c.MaxSpeed:
		return &ConfigError{
			Field:  "speed",
			Value:  c.Speed,
			Reason: fmt.Sprintf("must lie within [%g, %g]", c.MinSpeed, c.MaxSpeed),
		}
	}
	return nil
}

// Body is a kinematic body: position plus a velocity that is kept consistent
// with its course, speed and heading. It is not safe for concurrent use.
type Body struct {
	position Vector2D
	velocity Vector2D // direction AND speed
	heading  Vector2D // unit vector of velocity

	course float64
	speed  float64

	mass            float64
	maneuverability float64
	maxTurn         float64
	minSpeed        float64
	maxSpeed        float64

	steeringTarget Vector2D // unit direction of the last desired velocity
}

// NewBody creates a body from cfg, or returns a *ConfigError when the limits
// are inconsistent.
func NewBody(cfg BodyConfig) (*Body, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Body{
		position:        Vector2D{X: cfg.X, Y: cfg.Y},
		course:          NormalizeDegrees(cfg.Course),
		speed:           cfg.Speed,
		mass:            cfg.Mass,
		maneuverability: cfg.Maneuverability,
		maxTurn:         cfg.MaxTurn,
		minSpeed:        cfg.MinSpeed,
		maxSpeed:        cfg.MaxSpeed,
		steeringTarget:  Vector2D{X: 0, Y: 1}, // straight ahead
	}
	b.deriveFromCourse()
	return b, nil
}

// Position returns the body's position in world units
func (b *Body) Position() Vector2D { return b.position }

// Velocity returns the body's velocity vector
func (b *Body) Velocity() Vector2D { return b.velocity }

// Heading returns the unit vector of the velocity
func (b *Body) Heading() Vector2D { return b.heading }

// Course returns the course in true degrees within [0, 360)
func (b *Body) Course() float64 { return b.course }

// Speed returns the scalar speed
func (b *Body) Speed() float64 { return b.speed }

func (b *Body) Mass() float64            { return b.mass }
func (b *Body) Maneuverability() float64 { return b.maneuverability }
func (b *Body) MaxTurn() float64         { return b.maxTurn }
func (b *Body) MinSpeed() float64        { return b.minSpeed }
func (b *Body) MaxSpeed() float64        { return b.maxSpeed }
func (b *Body) SteeringTarget() Vector2D { return b.steeringTarget }

// CourseString formats the course for display as a zero-padded 3-digit
// number of whole degrees, e.g. "045".
func (b *Body) CourseString() string {
	return fmt.Sprintf("%03d", int(math.Round(b.course))%360)
}

// SetCourse points the body along a new course, keeping its speed.
func (b *Body) SetCourse(degrees float64) {
	b.course = NormalizeDegrees(degrees)
	b.deriveFromCourse()
}

// SetSpeed changes the speed along the current course. The speed is held
// within [MinSpeed, MaxSpeed].
func (b *Body) SetSpeed(speed float64) {
	b.speed = math.Max(b.minSpeed, math.Min(b.maxSpeed, speed))
	b.deriveFromCourse()
}

// SetVelocity assigns a velocity directly. The vector is truncated to
// MaxSpeed, course and heading are derived from it, and a result slower than
// MinSpeed is raised to MinSpeed along the derived course.
func (b *Body) SetVelocity(v Vector2D) {
	b.applyVelocity(v)
}

// SetLimits replaces the speed limits and re-applies the current velocity so
// the body satisfies them.
func (b *Body) SetLimits(minSpeed, maxSpeed float64) error {
	cfg := BodyConfig{
		Mass:            b.mass,
		Maneuverability: b.maneuverability,
		MaxTurn:         b.maxTurn,
		MinSpeed:        minSpeed,
		MaxSpeed:        maxSpeed,
		Speed:           minSpeed,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	b.minSpeed = minSpeed
	b.maxSpeed = maxSpeed
	b.applyVelocity(b.velocity)
	return nil
}

// SetMaxTurn replaces the turn-rate limit in radians per second.
func (b *Body) SetMaxTurn(radPerSec float64) error {
	if math.IsNaN(radPerSec) || math.IsInf(radPerSec, 0) || radPerSec < 0 {
		return &ConfigError{Field: "max_turn", Value: radPerSec, Reason: "must be finite and not negative"}
	}
	b.maxTurn = radPerSec
	return nil
}

// SetSteeringTarget records the direction the body is being steered toward.
func (b *Body) SetSteeringTarget(offset Vector2D) {
	b.steeringTarget = offset
}

// SetPosition teleports the body without touching its velocity.
func (b *Body) SetPosition(p Vector2D) {
	b.position = p
}

// Move integrates the position over delta seconds.
func (b *Body) Move(delta float64) {
	b.position = b.position.Add(b.velocity.Scale(delta))
}

// Snapshot copies the body's current state.
func (b *Body) Snapshot() Kinematic {
	return Kinematic{
		Position:        b.position,
		Velocity:        b.velocity,
		Heading:         b.heading,
		SteeringTarget:  b.steeringTarget,
		Course:          b.course,
		Speed:           b.speed,
		Mass:            b.mass,
		Maneuverability: b.maneuverability,
		MaxTurn:         b.maxTurn,
		MinSpeed:        b.minSpeed,
		MaxSpeed:        b.maxSpeed,
	}
}

// applyVelocity is the single entry point that keeps velocity, course, speed
// and heading consistent after a velocity assignment.
func (b *Body) applyVelocity(v Vector2D) {
	v = v.Truncate(b.maxSpeed)

	// A zero vector has no bearing; the previous course is kept.
	if !v.IsZero() {
		b.course = v.CompassBearing()
	}

	length := v.Length()
	if length < b.minSpeed {
		b.speed = b.minSpeed
		b.deriveFromCourse()
		return
	}

	b.velocity = v
	b.speed = length
	b.heading = v.Normalize()
}

// deriveFromCourse recomputes velocity and heading from speed and course.
func (b *Body) deriveFromCourse() {
	b.velocity = FromCourse(b.course, b.speed)
	b.heading = b.velocity.Normalize()
}
