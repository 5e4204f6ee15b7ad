// Package demo holds the ordered set of demonstration scenarios, one per
// steering behavior, and a sequencer to step through them.
package demo

import (
	"fmt"
	"math"
	"strings"

	"github.com/opd-ai/go-steering/pkg/config"
	"github.com/opd-ai/go-steering/pkg/physics"
	"github.com/opd-ai/go-steering/pkg/steering"
)

// demoTimeStep matches a 20 ms minimum logic interval.
const demoTimeStep = 0.02

// State is one demonstration.
type State struct {
	Name        string
	Behavior    steering.Behavior
	Description string

	build func() *config.Scenario
}

// Scenario returns a fresh scenario for the state.
func (s State) Scenario() *config.Scenario {
	sc := s.build()
	sc.Name = s.Name
	if sc.TimeStep == 0 {
		sc.TimeStep = demoTimeStep
	}
	if sc.Ticks == 0 {
		sc.Ticks = 500
	}
	return sc
}

func agent(name string, x, y, course, speed, maxSpeed float64) config.AgentConfig {
	return config.AgentConfig{
		Name:            name,
		X:               x,
		Y:               y,
		Course:          course,
		Speed:           speed,
		Mass:            1,
		Maneuverability: 1,
		MaxTurn:         math.Pi,
		MinSpeed:        0,
		MaxSpeed:        maxSpeed,
	}
}

func with(a config.AgentConfig, b steering.Behavior, target string) config.AgentConfig {
	a.Behavior = b
	a.Target = target
	return a
}

func toward(a config.AgentConfig, b steering.Behavior, p physics.Vector2D) config.AgentConfig {
	a.Behavior = b
	a.TargetPoint = &p
	return a
}

var states = []State{
	{
		Name:        "startup",
		Behavior:    steering.BehaviorNone,
		Description: "Three bodies cruise on fixed courses.",
		build: func() *config.Scenario {
			return &config.Scenario{Agents: []config.AgentConfig{
				agent("alpha", -20, 0, 0, 3, 5),
				agent("bravo", 0, 0, 120, 3, 5),
				agent("charlie", 20, 0, 240, 3, 5),
			}}
		},
	},
	{
		Name:        "wander",
		Behavior:    steering.BehaviorWander,
		Description: "A body wanders by steering toward a jittering point ahead of it.",
		build: func() *config.Scenario {
			a := with(agent("wanderer", 0, 0, 0, 3, 4), steering.BehaviorWander, "")
			a.Wander = &steering.WanderParams{Distance: 4, Radius: 2, Jitter: 0.35}
			return &config.Scenario{Seed: 7, Agents: []config.AgentConfig{a}}
		},
	},
	{
		Name:        "seek",
		Behavior:    steering.BehaviorSeek,
		Description: "A body turns and heads straight for a fixed point.",
		build: func() *config.Scenario {
			return &config.Scenario{CaptureRadius: 1, Agents: []config.AgentConfig{
				toward(agent("seeker", -20, -20, 0, 3, 6), steering.BehaviorSeek, physics.Vector2D{X: 25, Y: 10}),
			}}
		},
	},
	{
		Name:        "flee",
		Behavior:    steering.BehaviorFlee,
		Description: "A body runs directly away from a fixed point.",
		build: func() *config.Scenario {
			return &config.Scenario{Agents: []config.AgentConfig{
				toward(agent("runner", 5, 5, 180, 2, 6), steering.BehaviorFlee, physics.Vector2D{}),
			}}
		},
	},
	{
		Name:        "pursue",
		Behavior:    steering.BehaviorPursue,
		Description: "A hunter leads a wandering quarry by predicting where it will be.",
		build: func() *config.Scenario {
			quarry := with(agent("quarry", 20, 20, 90, 3, 3), steering.BehaviorWander, "")
			return &config.Scenario{Seed: 11, CaptureRadius: 1.5, Agents: []config.AgentConfig{
				quarry,
				with(agent("hunter", -20, -20, 0, 4, 5), steering.BehaviorPursue, "quarry"),
			}}
		},
	},
	{
		Name:        "arrive",
		Behavior:    steering.BehaviorArrive,
		Description: "A body seeks a point and slows to a stop on it.",
		build: func() *config.Scenario {
			a := toward(agent("arriver", -30, 20, 90, 3, 6), steering.BehaviorArrive, physics.Vector2D{X: 20, Y: -10})
			a.SlowingRadius = 12
			return &config.Scenario{Ticks: 1200, CaptureRadius: 0.5, Agents: []config.AgentConfig{a}}
		},
	},
	{
		Name:        "evade",
		Behavior:    steering.BehaviorEvade,
		Description: "A body flees the predicted position of a pursuer.",
		build: func() *config.Scenario {
			return &config.Scenario{Agents: []config.AgentConfig{
				with(agent("pursuer", -25, 0, 90, 4, 4.5), steering.BehaviorPursue, "evader"),
				with(agent("evader", 0, 0, 0, 3, 5), steering.BehaviorEvade, "pursuer"),
			}}
		},
	},
	{
		Name:        "align",
		Behavior:    steering.BehaviorAlign,
		Description: "A follower turns onto the leader's heading at its own speed.",
		build: func() *config.Scenario {
			leader := with(agent("leader", 0, 0, 45, 3, 3), steering.BehaviorWander, "")
			return &config.Scenario{Seed: 3, Agents: []config.AgentConfig{
				leader,
				with(agent("follower", -10, 10, 200, 2, 4), steering.BehaviorAlign, "leader"),
			}}
		},
	},
	{
		Name:        "match",
		Behavior:    steering.BehaviorMatchVelocity,
		Description: "A follower copies the leader's velocity, heading and speed alike.",
		build: func() *config.Scenario {
			leader := with(agent("leader", 0, 0, 300, 3, 3), steering.BehaviorWander, "")
			return &config.Scenario{Seed: 5, Agents: []config.AgentConfig{
				leader,
				with(agent("follower", 10, -10, 90, 1, 4), steering.BehaviorMatchVelocity, "leader"),
			}}
		},
	},
	{
		Name:        "broadside",
		Behavior:    steering.BehaviorBroadside,
		Description: "A hunter holds a course perpendicular to the line toward its quarry.",
		build: func() *config.Scenario {
			return &config.Scenario{Agents: []config.AgentConfig{
				agent("quarry", 30, 0, 0, 2, 2),
				with(agent("hunter", 0, 0, 30, 4, 5), steering.BehaviorBroadside, "quarry"),
			}}
		},
	},
	{
		Name:        "orthogonal",
		Behavior:    steering.BehaviorOrthogonal,
		Description: "A hunter holds a course perpendicular to the line toward the predicted intercept.",
		build: func() *config.Scenario {
			return &config.Scenario{Agents: []config.AgentConfig{
				agent("quarry", 30, -20, 0, 3, 3),
				with(agent("hunter", 0, 0, 150, 4, 5), steering.BehaviorOrthogonal, "quarry"),
			}}
		},
	},
}

// States returns every demonstration in order, startup first.
func States() []State {
	out := make([]State, len(states))
	copy(out, states)
	return out
}

// Find returns the state with the given name, case-insensitively.
func Find(name string) (State, error) {
	for _, s := range states {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return State{}, fmt.Errorf("unknown demo state %q", name)
}

// Sequencer steps through the demonstrations, wrapping at both ends.
type Sequencer struct {
	states []State
	index  int
}

// NewSequencer starts at the first state.
func NewSequencer() *Sequencer {
	return &Sequencer{states: States()}
}

// Current returns the active state.
func (q *Sequencer) Current() State { return q.states[q.index] }

// Index returns the active state's position.
func (q *Sequencer) Index() int { return q.index }

// Next advances to the following state, wrapping to the first.
func (q *Sequencer) Next() State {
	q.index = (q.index + 1) % len(q.states)
	return q.Current()
}

// Prev goes back one state, wrapping to the last.
func (q *Sequencer) Prev() State {
	q.index = (q.index - 1 + len(q.states)) % len(q.states)
	return q.Current()
}

// Reset returns to the first state.
func (q *Sequencer) Reset() State {
	q.index = 0
	return q.Current()
}

// Goto jumps to the named state.
func (q *Sequencer) Goto(name string) (State, error) {
	for i, s := range q.states {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			q.index = i
			return s, nil
		}
	}
	return q.Current(), fmt.Errorf("unknown demo state %q", name)
}
