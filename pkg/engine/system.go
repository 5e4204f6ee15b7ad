// pkg/engine/system.go
package engine

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-steering/pkg/physics"
	"github.com/opd-ai/go-steering/pkg/steering"
)

// steeringSystem is the ecs.System that moves every agent one tick.
// Each update reads every body first, then writes every body, so no agent
// steers against a target that has already moved this tick.
type steeringSystem struct {
	agents []*Agent

	enforceTurnRate bool
	captureRadius   float64

	// delta is the float64 step for the current frame; World.Update only
	// carries a float32.
	delta float64

	reached []*Agent
}

func (s *steeringSystem) add(a *Agent) {
	s.agents = append(s.agents, a)
}

// Remove satisfies the ecs.System interface
func (s *steeringSystem) Remove(basic ecs.BasicEntity) {
	for i, a := range s.agents {
		if a.ID() == basic.ID() {
			s.agents = append(s.agents[:i:i], s.agents[i+1:]...)
			break
		}
	}
	for _, a := range s.agents {
		if a.target != nil && a.target.ID() == basic.ID() {
			a.target = nil
			a.reached = false
		}
	}
}

// Update satisfies the ecs.System interface
func (s *steeringSystem) Update(_ float32) {
	dt := s.delta
	frame := s.snapshot()

	desired := make([]physics.Vector2D, len(s.agents))
	for i, a := range s.agents {
		desired[i] = steering.Steer(a.behavior, frame[a.ID()], a.steeringContext(frame))
	}

	for i, a := range s.agents {
		v := desired[i]
		if s.enforceTurnRate {
			v = physics.LimitTurn(a.Body.Velocity(), v, a.Body.MaxTurn()*dt)
		}
		if !desired[i].IsZero() {
			a.Body.SetSteeringTarget(desired[i].Normalize())
		}
		a.Body.SetVelocity(v)
		if v.IsZero() && a.behavior == steering.BehaviorAlign {
			s.alignInPlace(a, frame, dt)
		}
		a.Body.Move(dt)
	}

	s.detectArrivals()
}

// alignInPlace turns a stopped aligning agent onto its target's course, since
// a zero velocity carries no bearing of its own.
func (s *steeringSystem) alignInPlace(a *Agent, frame map[uint64]physics.Kinematic, dt float64) {
	if a.target == nil {
		return
	}
	target, ok := frame[a.target.ID()]
	if !ok {
		return
	}
	course := physics.FromCourse(target.Course, 1)
	if s.enforceTurnRate {
		course = physics.LimitTurn(physics.FromCourse(a.Body.Course(), 1), course, a.Body.MaxTurn()*dt)
	}
	a.Body.SetCourse(course.CompassBearing())
}

func (s *steeringSystem) snapshot() map[uint64]physics.Kinematic {
	frame := make(map[uint64]physics.Kinematic, len(s.agents))
	for _, a := range s.agents {
		frame[a.ID()] = a.Body.Snapshot()
	}
	return frame
}

// detectArrivals records agents that entered their goal's capture zone this
// tick. An agent is reported once per approach: it must leave the zone before
// it can be reported again.
func (s *steeringSystem) detectArrivals() {
	s.reached = s.reached[:0]
	if s.captureRadius <= 0 {
		return
	}

	frame := s.snapshot()
	for _, a := range s.agents {
		goal, ok := a.goal(frame)
		if !ok {
			a.reached = false
			continue
		}
		zone := physics.Circle{Center: goal, Radius: s.captureRadius}
		inside := zone.Contains(a.Body.Position())
		if inside && !a.reached {
			s.reached = append(s.reached, a)
		}
		a.reached = inside
	}
}
