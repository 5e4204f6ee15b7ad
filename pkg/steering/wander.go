package steering

import (
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-steering/pkg/physics"
)

// WanderParams shapes the wander circle projected ahead of the agent.
type WanderParams struct {
	Distance float64 `json:"distance" yaml:"distance"` // circle center ahead of the agent, meters
	Radius   float64 `json:"radius" yaml:"radius"`     // circle radius, meters
	Jitter   float64 `json:"jitter" yaml:"jitter"`     // max angle change per step, radians
}

// DefaultWanderParams are used when a scenario leaves wander parameters unset.
var DefaultWanderParams = WanderParams{
	Distance: 4,
	Radius:   2,
	Jitter:   0.35,
}

// WanderState is the per-agent memory of Wander: the current angle of the
// target on the wander circle, relative to the agent's forward direction.
// It must be kept between ticks; a fresh state each tick makes the agent
// twitch instead of wander.
type WanderState struct {
	Params WanderParams
	Angle  float64

	rng *rand.Rand
}

// NewWanderState creates a wander state whose perturbations are drawn from a
// PCG generator seeded with seed, so runs are reproducible.
func NewWanderState(params WanderParams, seed uint64) *WanderState {
	if params == (WanderParams{}) {
		params = DefaultWanderParams
	}
	return &WanderState{
		Params: params,
		rng:    newWanderRand(seed),
	}
}

func newWanderRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Perturb moves the wander angle by a uniform amount within ±Jitter and
// returns the new angle, wrapped to (-π, π]. A state built without
// NewWanderState draws from the stream of seed 0.
func (w *WanderState) Perturb() float64 {
	if w.rng == nil {
		w.rng = newWanderRand(0)
	}
	w.Angle += (w.rng.Float64()*2 - 1) * w.Params.Jitter
	w.Angle = wrapAngle(w.Angle)
	return w.Angle
}

// Target returns the current point on the wander circle for self without
// perturbing the state.
func (w *WanderState) Target(self physics.Kinematic) physics.Vector2D {
	forward := self.Forward()
	center := self.Position.Add(forward.Scale(w.Params.Distance))
	return center.Add(forward.Rotate(w.Angle).Scale(w.Params.Radius))
}

// Wander perturbs state and seeks the resulting point on the wander circle.
func Wander(self physics.Kinematic, state *WanderState) physics.Vector2D {
	state.Perturb()
	return Seek(self, state.Target(self))
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
