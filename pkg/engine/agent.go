// pkg/engine/agent.go
package engine

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-steering/pkg/physics"
	"github.com/opd-ai/go-steering/pkg/steering"
)

// AgentSpec describes an agent to add to a Simulation.
type AgentSpec struct {
	Name          string
	Body          physics.BodyConfig
	Behavior      steering.Behavior
	TargetID      uint64           // agent steered against by target behaviors
	Point         physics.Vector2D // static point for Seek, Flee and Arrive
	SlowingRadius float64
	Wander        steering.WanderParams
	Seed          uint64 // wander seed; zero derives one from the simulation seed
}

// Agent is a steered body living in the simulation's ecs.World.
type Agent struct {
	ecs.BasicEntity

	Name string
	Body *physics.Body

	behavior      steering.Behavior
	target        *Agent
	point         physics.Vector2D
	slowingRadius float64
	wander        *steering.WanderState

	// reached is set while the agent sits inside its target's capture zone
	reached bool
}

// Behavior returns the agent's current behavior.
func (a *Agent) Behavior() steering.Behavior { return a.behavior }

// TargetID returns the ID of the agent being steered against, or zero.
func (a *Agent) TargetID() uint64 {
	if a.target == nil {
		return 0
	}
	return a.target.ID()
}

// Point returns the static target point.
func (a *Agent) Point() physics.Vector2D { return a.point }

// steeringContext builds the steering context from this frame's snapshots.
func (a *Agent) steeringContext(frame map[uint64]physics.Kinematic) steering.Context {
	c := steering.Context{
		Point:         a.point,
		SlowingRadius: a.slowingRadius,
		Wander:        a.wander,
	}
	if a.target != nil {
		if k, ok := frame[a.target.ID()]; ok {
			c.Target = &k
		}
	}
	return c
}

// goal returns where the agent is trying to get to, if its behavior closes
// on something.
func (a *Agent) goal(frame map[uint64]physics.Kinematic) (physics.Vector2D, bool) {
	switch a.behavior {
	case steering.BehaviorSeek, steering.BehaviorArrive:
		return a.point, true
	case steering.BehaviorPursue, steering.BehaviorOrthogonal:
		if a.target == nil {
			return physics.Vector2D{}, false
		}
		k, ok := frame[a.target.ID()]
		return k.Position, ok
	}
	return physics.Vector2D{}, false
}

func (a *Agent) state() AgentState {
	return AgentState{
		ID:         a.ID(),
		Name:       a.Name,
		Behavior:   a.behavior.String(),
		Position:   a.Body.Position(),
		Velocity:   a.Body.Velocity(),
		Heading:    a.Body.Heading(),
		Course:     a.Body.Course(),
		CourseText: a.Body.CourseString(),
		Speed:      a.Body.Speed(),
	}
}
