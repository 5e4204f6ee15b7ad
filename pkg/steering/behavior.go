package steering

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBehavior is returned when a behavior name or value is not registered.
var ErrUnknownBehavior = errors.New("unknown steering behavior")

// Behavior selects a steering algorithm.
type Behavior int

// Behaviors in demo order. BehaviorNone leaves the velocity untouched.
const (
	BehaviorNone Behavior = iota
	BehaviorWander
	BehaviorSeek
	BehaviorFlee
	BehaviorPursue
	BehaviorArrive
	BehaviorEvade
	BehaviorAlign
	BehaviorMatchVelocity
	BehaviorBroadside
	BehaviorOrthogonal
)

var behaviorNames = [...]string{
	BehaviorNone:          "none",
	BehaviorWander:        "wander",
	BehaviorSeek:          "seek",
	BehaviorFlee:          "flee",
	BehaviorPursue:        "pursue",
	BehaviorArrive:        "arrive",
	BehaviorEvade:         "evade",
	BehaviorAlign:         "align",
	BehaviorMatchVelocity: "match",
	BehaviorBroadside:     "broadside",
	BehaviorOrthogonal:    "orthogonal",
}

var behaviorAliases = map[string]Behavior{
	"":                     BehaviorNone,
	"cruise":               BehaviorNone,
	"match_velocity":       BehaviorMatchVelocity,
	"matchvelocity":        BehaviorMatchVelocity,
	"orthogonal_intercept": BehaviorOrthogonal,
}

// Behaviors lists every behavior, BehaviorNone first.
func Behaviors() []Behavior {
	out := make([]Behavior, 0, len(behaviorNames))
	for b := range behaviorNames {
		out = append(out, Behavior(b))
	}
	return out
}

// String returns the behavior's canonical name
func (b Behavior) String() string {
	if b < 0 || int(b) >= len(behaviorNames) {
		return fmt.Sprintf("Behavior(%d)", int(b))
	}
	return behaviorNames[b]
}

// Valid reports whether b names a registered behavior.
func (b Behavior) Valid() bool {
	return b >= 0 && int(b) < len(behaviorNames)
}

// NeedsPoint reports whether the behavior steers relative to a static point.
func (b Behavior) NeedsPoint() bool {
	switch b {
	case BehaviorSeek, BehaviorFlee, BehaviorArrive:
		return true
	}
	return false
}

// NeedsTarget reports whether the behavior steers relative to another body.
func (b Behavior) NeedsTarget() bool {
	switch b {
	case BehaviorPursue, BehaviorEvade, BehaviorAlign, BehaviorMatchVelocity, BehaviorBroadside, BehaviorOrthogonal:
		return true
	}
	return false
}

// ParseBehavior resolves a behavior from its name, case-insensitively.
func ParseBehavior(name string) (Behavior, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for b, n := range behaviorNames {
		if n == key {
			return Behavior(b), nil
		}
	}
	if b, ok := behaviorAliases[key]; ok {
		return b, nil
	}
	return BehaviorNone, fmt.Errorf("%w: %q", ErrUnknownBehavior, name)
}

// MarshalText implements encoding.TextMarshaler
func (b Behavior) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBehavior, int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (b *Behavior) UnmarshalText(text []byte) error {
	parsed, err := ParseBehavior(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
