package steering

import (
	"errors"
	"fmt"

	"github.com/opd-ai/go-steering/pkg/physics"
)

// ErrMissingTarget is returned when a behavior's requirements are not met by a Context.
var ErrMissingTarget = errors.New("steering behavior is missing its target")

// DefaultSlowingRadius is used by Arrive when the Context leaves it unset.
const DefaultSlowingRadius = 10.0

// Context carries everything besides the agent itself that a behavior may
// steer against.
type Context struct {
	Point         physics.Vector2D   // static target point for Seek, Flee and Arrive
	Target        *physics.Kinematic // quarry, pursuer or leader
	SlowingRadius float64
	Wander        *WanderState
}

// Algorithm computes a desired velocity for one behavior.
type Algorithm interface {
	Behavior() Behavior
	Steer(self physics.Kinematic, c Context) physics.Vector2D
}

// Func adapts a plain function to the Algorithm interface.
type Func struct {
	Kind Behavior
	Fn   func(self physics.Kinematic, c Context) physics.Vector2D
}

func (f Func) Behavior() Behavior { return f.Kind }

func (f Func) Steer(self physics.Kinematic, c Context) physics.Vector2D {
	return f.Fn(self, c)
}

var registry = map[Behavior]Algorithm{
	BehaviorNone: Func{BehaviorNone, func(self physics.Kinematic, _ Context) physics.Vector2D {
		return self.Velocity
	}},
	BehaviorWander: Func{BehaviorWander, func(self physics.Kinematic, c Context) physics.Vector2D {
		return Wander(self, c.Wander)
	}},
	BehaviorSeek: Func{BehaviorSeek, func(self physics.Kinematic, c Context) physics.Vector2D {
		return Seek(self, c.Point)
	}},
	BehaviorFlee: Func{BehaviorFlee, func(self physics.Kinematic, c Context) physics.Vector2D {
		return Flee(self, c.Point)
	}},
	BehaviorArrive: Func{BehaviorArrive, func(self physics.Kinematic, c Context) physics.Vector2D {
		radius := c.SlowingRadius
		if radius <= 0 {
			radius = DefaultSlowingRadius
		}
		return Arrive(self, c.Point, radius)
	}},
	BehaviorPursue: Func{BehaviorPursue, func(self physics.Kinematic, c Context) physics.Vector2D {
		return Pursue(self, *c.Target)
	}},
	BehaviorEvade: Func{BehaviorEvade, func(self physics.Kinematic, c Context) physics.Vector2D {
		return Evade(self, *c.Target)
	}},
	BehaviorAlign: Func{BehaviorAlign, func(self physics.Kinematic, c Context) physics.Vector2D {
		return Align(self, *c.Target)
	}},
	BehaviorMatchVelocity: Func{BehaviorMatchVelocity, func(self physics.Kinematic, c Context) physics.Vector2D {
		return MatchVelocity(self, *c.Target)
	}},
	BehaviorBroadside: Func{BehaviorBroadside, func(self physics.Kinematic, c Context) physics.Vector2D {
		return Broadside(self, *c.Target)
	}},
	BehaviorOrthogonal: Func{BehaviorOrthogonal, func(self physics.Kinematic, c Context) physics.Vector2D {
		return OrthogonalIntercept(self, *c.Target)
	}},
}

// Lookup returns the registered algorithm for b.
func Lookup(b Behavior) (Algorithm, error) {
	alg, ok := registry[b]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBehavior, b)
	}
	return alg, nil
}

// Validate checks that c satisfies the requirements of b.
func Validate(b Behavior, c Context) error {
	if !b.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownBehavior, b)
	}
	switch {
	case b.NeedsTarget() && c.Target == nil:
		return fmt.Errorf("%w: %s needs a target body", ErrMissingTarget, b)
	case b == BehaviorWander && c.Wander == nil:
		return fmt.Errorf("%w: %s needs wander state", ErrMissingTarget, b)
	}
	return nil
}

// Steer dispatches to the algorithm registered for b. If b is unknown or c
// does not satisfy it, the agent holds its current velocity.
func Steer(b Behavior, self physics.Kinematic, c Context) physics.Vector2D {
	if Validate(b, c) != nil {
		return self.Velocity
	}
	alg, err := Lookup(b)
	if err != nil {
		return self.Velocity
	}
	return alg.Steer(self, c)
}
