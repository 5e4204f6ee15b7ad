// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-steering/pkg/physics"
	"github.com/opd-ai/go-steering/pkg/steering"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrInvalidScenario is wrapped by every scenario validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario describes a complete simulation: its timing and the agents in it.
type Scenario struct {
	Name            string        `json:"name" yaml:"name"`
	TimeStep        float64       `json:"timeStep" yaml:"time_step"` // seconds per tick
	Ticks           int           `json:"ticks" yaml:"ticks"`
	Seed            uint64        `json:"seed" yaml:"seed"`
	EnforceTurnRate bool          `json:"enforceTurnRate" yaml:"enforce_turn_rate"`
	CaptureRadius   float64       `json:"captureRadius" yaml:"capture_radius"`
	Agents          []AgentConfig `json:"agents" yaml:"agents"`
}

// AgentConfig contains configuration for one agent
type AgentConfig struct {
	Name            string                 `json:"name" yaml:"name"`
	X               float64                `json:"x" yaml:"x"`
	Y               float64                `json:"y" yaml:"y"`
	Course          float64                `json:"course" yaml:"course"`
	Speed           float64                `json:"speed" yaml:"speed"`
	Mass            float64                `json:"mass" yaml:"mass"`
	Maneuverability float64                `json:"maneuverability" yaml:"maneuverability"`
	MaxTurn         float64                `json:"maxTurn" yaml:"max_turn"` // radians per second
	MinSpeed        float64                `json:"minSpeed" yaml:"min_speed"`
	MaxSpeed        float64                `json:"maxSpeed" yaml:"max_speed"`
	Behavior        steering.Behavior      `json:"behavior" yaml:"behavior"`
	Target          string                 `json:"target,omitempty" yaml:"target,omitempty"`
	TargetPoint     *physics.Vector2D      `json:"targetPoint,omitempty" yaml:"target_point,omitempty"`
	SlowingRadius   float64                `json:"slowingRadius,omitempty" yaml:"slowing_radius,omitempty"`
	Wander          *steering.WanderParams `json:"wander,omitempty" yaml:"wander,omitempty"`
}

// BodyConfig converts the agent's kinematic fields.
func (a AgentConfig) BodyConfig() physics.BodyConfig {
	return physics.BodyConfig{
		X:               a.X,
		Y:               a.Y,
		Course:          a.Course,
		Speed:           a.Speed,
		Mass:            a.Mass,
		Maneuverability: a.Maneuverability,
		MaxTurn:         a.MaxTurn,
		MinSpeed:        a.MinSpeed,
		MaxSpeed:        a.MaxSpeed,
	}
}

// Agent returns the agent config with the given name.
func (s *Scenario) Agent(name string) (AgentConfig, bool) {
	for _, a := range s.Agents {
		if a.Name == name {
			return a, true
		}
	}
	return AgentConfig{}, false
}

// Validate checks timing, names, body limits and that every behavior has
// what it steers against.
func (s *Scenario) Validate() error {
	if s.TimeStep <= 0 || math.IsNaN(s.TimeStep) || math.IsInf(s.TimeStep, 0) {
		return fmt.Errorf("%w: time_step must be positive, got %g", ErrInvalidScenario, s.TimeStep)
	}
	if s.Ticks < 0 {
		return fmt.Errorf("%w: ticks must not be negative, got %d", ErrInvalidScenario, s.Ticks)
	}
	if s.CaptureRadius < 0 {
		return fmt.Errorf("%w: capture_radius must not be negative, got %g", ErrInvalidScenario, s.CaptureRadius)
	}
	if len(s.Agents) == 0 {
		return fmt.Errorf("%w: no agents", ErrInvalidScenario)
	}

	names := make(map[string]bool, len(s.Agents))
	for _, a := range s.Agents {
		if err := ValidateAgentName(a.Name); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
		}
		if names[a.Name] {
			return fmt.Errorf("%w: duplicate agent name %q", ErrInvalidScenario, a.Name)
		}
		names[a.Name] = true
	}

	for _, a := range s.Agents {
		if err := a.BodyConfig().Validate(); err != nil {
			return fmt.Errorf("%w: agent %q: %w", ErrInvalidScenario, a.Name, err)
		}
		if err := validateBehavior(a, names); err != nil {
			return fmt.Errorf("%w: agent %q: %w", ErrInvalidScenario, a.Name, err)
		}
	}
	return nil
}

func validateBehavior(a AgentConfig, names map[string]bool) error {
	b := a.Behavior
	if !b.Valid() {
		return fmt.Errorf("%w: %s", steering.ErrUnknownBehavior, b)
	}
	switch {
	case b.NeedsTarget():
		if a.Target == "" {
			return fmt.Errorf("%w: %s needs a target agent", steering.ErrMissingTarget, b)
		}
		if a.Target == a.Name {
			return fmt.Errorf("%s cannot target itself", b)
		}
		if !names[a.Target] {
			return fmt.Errorf("%w: target agent %q does not exist", steering.ErrMissingTarget, a.Target)
		}
	case b.NeedsPoint():
		if a.TargetPoint == nil {
			return fmt.Errorf("%w: %s needs a target point", steering.ErrMissingTarget, b)
		}
	}
	if a.SlowingRadius < 0 {
		return fmt.Errorf("slowing_radius must not be negative, got %g", a.SlowingRadius)
	}
	if w := a.Wander; w != nil && (w.Distance < 0 || w.Radius < 0 || w.Jitter < 0) {
		return fmt.Errorf("wander parameters must not be negative: %+v", *w)
	}
	return nil
}

// LoadScenario loads a scenario from a YAML or JSON file, chosen by extension,
// and validates it.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var s Scenario
	if isJSON(path) {
		err = json.Unmarshal(data, &s)
	} else {
		err = yaml.Unmarshal(data, &s)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveScenario saves a scenario to a file, as JSON when the path ends in
// .json and YAML otherwise.
func SaveScenario(s *Scenario, path string) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(s, "", "  ")
	} else {
		data, err = yaml.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write scenario file: %w", err)
	}
	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// DefaultScenario returns a wandering quarry chased by a pursuing hunter.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:          "pursuit",
		TimeStep:      0.05,
		Ticks:         600,
		Seed:          1,
		CaptureRadius: 2,
		Agents: []AgentConfig{
			{
				Name:            "quarry",
				X:               30,
				Y:               30,
				Course:          90,
				Speed:           3,
				Mass:            1,
				Maneuverability: 1,
				MaxTurn:         math.Pi,
				MinSpeed:        1,
				MaxSpeed:        4,
				Behavior:        steering.BehaviorWander,
				Wander:          &steering.WanderParams{Distance: 4, Radius: 2, Jitter: 0.35},
			},
			{
				Name:            "hunter",
				X:               0,
				Y:               0,
				Course:          0,
				Speed:           5,
				Mass:            1,
				Maneuverability: 1,
				MaxTurn:         math.Pi / 2,
				MinSpeed:        1,
				MaxSpeed:        6,
				Behavior:        steering.BehaviorPursue,
				Target:          "quarry",
			},
		},
	}
}
