// pkg/engine/simulation.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/google/uuid"

	"github.com/opd-ai/go-steering/pkg/config"
	"github.com/opd-ai/go-steering/pkg/event"
	"github.com/opd-ai/go-steering/pkg/logging"
	"github.com/opd-ai/go-steering/pkg/physics"
	"github.com/opd-ai/go-steering/pkg/steering"
)

var (
	// ErrUnknownAgent is returned when an agent ID or name is not in the simulation.
	ErrUnknownAgent = errors.New("unknown agent")
	// ErrDuplicateAgent is returned when an agent name is already taken.
	ErrDuplicateAgent = errors.New("duplicate agent name")
	// ErrNotRunning is returned when a stopped simulation is asked to run.
	ErrNotRunning = errors.New("simulation is not running")
)

// Defaults applied by NewSimulation to unset options.
const (
	DefaultTimeStep     = 0.02
	DefaultMaxDeltaTime = 0.05
)

// AgentState is one agent's entry in a simulation frame.
type AgentState = event.AgentState

// Status is the lifecycle state of a Simulation.
type Status int

const (
	StatusWaiting Status = iota
	StatusActive
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusActive:
		return "active"
	case StatusStopped:
		return "stopped"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Options configures a Simulation.
type Options struct {
	TimeStep        float64 // seconds per fixed tick
	MaxDeltaTime    float64 // cap on a single tick's delta
	EnforceTurnRate bool    // limit course changes to MaxTurn·dt per tick
	CaptureRadius   float64 // zero disables TargetReached events
	Seed            uint64
	Logger          *logging.Logger
	EventBus        *event.Bus
}

// Simulation drives a set of steered agents. Agents live in an ecs.World and
// are advanced by a single steering system.
type Simulation struct {
	RunID           string
	TimeStep        float64
	MaxDeltaTime    float64
	EnforceTurnRate bool
	CaptureRadius   float64
	CurrentTick     uint64
	ElapsedTime     float64 // simulated seconds
	Status          Status
	EventBus        *event.Bus
	EntityLock      sync.RWMutex

	world  *ecs.World
	system *steeringSystem
	agents map[uint64]*Agent
	names  map[string]*Agent
	seed   uint64
	serial uint64 // agents ever added; never reused after a removal

	logger *logging.Logger
	logCtx context.Context
}

// NewSimulation creates an empty simulation.
func NewSimulation(opts Options) *Simulation {
	if opts.TimeStep <= 0 {
		opts.TimeStep = DefaultTimeStep
	}
	if opts.MaxDeltaTime <= 0 {
		opts.MaxDeltaTime = DefaultMaxDeltaTime
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.EventBus == nil {
		opts.EventBus = event.NewEventBus()
	}

	runID := uuid.NewString()
	sim := &Simulation{
		RunID:           runID,
		TimeStep:        opts.TimeStep,
		MaxDeltaTime:    opts.MaxDeltaTime,
		EnforceTurnRate: opts.EnforceTurnRate,
		CaptureRadius:   opts.CaptureRadius,
		EventBus:        opts.EventBus,
		world:           &ecs.World{},
		agents:          make(map[uint64]*Agent),
		names:           make(map[string]*Agent),
		seed:            opts.Seed,
		logger:          opts.Logger.Named("engine").With("run_id", runID),
		logCtx:          logging.WithCorrelationID(context.Background(), runID),
	}
	sim.system = &steeringSystem{
		enforceTurnRate: opts.EnforceTurnRate,
		captureRadius:   opts.CaptureRadius,
	}
	sim.world.AddSystem(sim.system)
	return sim
}

// FromScenario builds a simulation holding every agent of s. Targets are
// resolved by name, so agents may reference agents declared after them.
func FromScenario(s *config.Scenario, logger *logging.Logger) (*Simulation, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	sim := NewSimulation(Options{
		TimeStep:        s.TimeStep,
		EnforceTurnRate: s.EnforceTurnRate,
		CaptureRadius:   s.CaptureRadius,
		Seed:            s.Seed,
		Logger:          logger,
	})

	for _, ac := range s.Agents {
		spec := AgentSpec{
			Name:          ac.Name,
			Body:          ac.BodyConfig(),
			SlowingRadius: ac.SlowingRadius,
		}
		if !ac.Behavior.NeedsTarget() {
			spec.Behavior = ac.Behavior
		}
		if ac.TargetPoint != nil {
			spec.Point = *ac.TargetPoint
		}
		if ac.Wander != nil {
			spec.Wander = *ac.Wander
		}
		if _, err := sim.AddAgent(spec); err != nil {
			return nil, fmt.Errorf("failed to add agent %q: %w", ac.Name, err)
		}
	}

	for _, ac := range s.Agents {
		if !ac.Behavior.NeedsTarget() {
			continue
		}
		self, _ := sim.AgentByName(ac.Name)
		target, err := sim.AgentByName(ac.Target)
		if err != nil {
			return nil, fmt.Errorf("agent %q: %w", ac.Name, err)
		}
		if err := sim.SetBehavior(self.ID(), ac.Behavior, target.ID()); err != nil {
			return nil, fmt.Errorf("agent %q: %w", ac.Name, err)
		}
	}

	sim.logger.Info(sim.logCtx, "scenario loaded", "scenario", s.Name, "agents", len(s.Agents))
	return sim, nil
}

// AddAgent creates an agent from spec and adds it to the simulation.
func (s *Simulation) AddAgent(spec AgentSpec) (*Agent, error) {
	body, err := physics.NewBody(spec.Body)
	if err != nil {
		return nil, err
	}
	if !spec.Behavior.Valid() {
		return nil, fmt.Errorf("%w: %s", steering.ErrUnknownBehavior, spec.Behavior)
	}

	s.EntityLock.Lock()

	agent := &Agent{
		BasicEntity:   ecs.NewBasic(),
		Name:          spec.Name,
		Body:          body,
		point:         spec.Point,
		slowingRadius: spec.SlowingRadius,
	}
	serial := s.serial + 1
	if agent.Name == "" {
		agent.Name = s.defaultName(serial)
	}
	if _, taken := s.names[agent.Name]; taken {
		s.EntityLock.Unlock()
		return nil, fmt.Errorf("%w: %q", ErrDuplicateAgent, agent.Name)
	}

	seed := spec.Seed
	if seed == 0 {
		seed = s.seed ^ serial*0x9e3779b97f4a7c15
	}
	agent.wander = steering.NewWanderState(spec.Wander, seed)

	if err := s.assignBehavior(agent, spec.Behavior, spec.TargetID); err != nil {
		s.EntityLock.Unlock()
		return nil, err
	}

	s.serial = serial
	s.agents[agent.ID()] = agent
	s.names[agent.Name] = agent
	s.system.add(agent)
	s.EntityLock.Unlock()

	s.logger.Debug(s.logCtx, "agent added", "agent", agent.Name, "id", agent.ID(), "behavior", agent.behavior.String())
	s.EventBus.Publish(event.NewAgentEvent(event.AgentAdded, s, agent.ID(), agent.Name, agent.behavior.String(), agent.TargetID()))
	return agent, nil
}

// defaultName picks "agent-N" for the Nth added agent, skipping names a
// caller has already taken.
func (s *Simulation) defaultName(serial uint64) string {
	for n := serial; ; n++ {
		name := fmt.Sprintf("agent-%d", n)
		if _, taken := s.names[name]; !taken {
			return name
		}
	}
}

// RemoveAgent removes an agent. Agents that were steering against it lose
// their target and hold their velocity.
func (s *Simulation) RemoveAgent(id uint64) error {
	s.EntityLock.Lock()
	agent, ok := s.agents[id]
	if !ok {
		s.EntityLock.Unlock()
		return fmt.Errorf("%w: %d", ErrUnknownAgent, id)
	}
	delete(s.agents, id)
	delete(s.names, agent.Name)
	s.world.RemoveEntity(agent.BasicEntity)
	s.EntityLock.Unlock()

	s.logger.Debug(s.logCtx, "agent removed", "agent", agent.Name, "id", id)
	s.EventBus.Publish(event.NewAgentEvent(event.AgentRemoved, s, id, agent.Name, agent.behavior.String(), 0))
	return nil
}

// Agent returns the agent with the given ID.
func (s *Simulation) Agent(id uint64) (*Agent, error) {
	s.EntityLock.RLock()
	defer s.EntityLock.RUnlock()

	agent, ok := s.agents[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAgent, id)
	}
	return agent, nil
}

// AgentByName returns the agent with the given name.
func (s *Simulation) AgentByName(name string) (*Agent, error) {
	s.EntityLock.RLock()
	defer s.EntityLock.RUnlock()

	agent, ok := s.names[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, name)
	}
	return agent, nil
}

// Agents returns every agent in insertion order.
func (s *Simulation) Agents() []*Agent {
	s.EntityLock.RLock()
	defer s.EntityLock.RUnlock()

	out := make([]*Agent, len(s.system.agents))
	copy(out, s.system.agents)
	return out
}

// SetBehavior switches an agent's behavior. targetID is only used by
// behaviors that steer against another agent.
func (s *Simulation) SetBehavior(id uint64, b steering.Behavior, targetID uint64) error {
	s.EntityLock.Lock()
	agent, ok := s.agents[id]
	if !ok {
		s.EntityLock.Unlock()
		return fmt.Errorf("%w: %d", ErrUnknownAgent, id)
	}
	if err := s.assignBehavior(agent, b, targetID); err != nil {
		s.EntityLock.Unlock()
		return err
	}
	s.EntityLock.Unlock()

	s.logger.Info(s.logCtx, "behavior changed", "agent", agent.Name, "behavior", b.String(), "target", agent.TargetID())
	s.EventBus.Publish(event.NewAgentEvent(event.BehaviorChanged, s, id, agent.Name, b.String(), agent.TargetID()))
	return nil
}

// SetTargetPoint moves the static point an agent seeks, flees or arrives at.
func (s *Simulation) SetTargetPoint(id uint64, p physics.Vector2D) error {
	s.EntityLock.Lock()
	defer s.EntityLock.Unlock()

	agent, ok := s.agents[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownAgent, id)
	}
	agent.point = p
	agent.reached = false
	return nil
}

// assignBehavior must be called with EntityLock held.
func (s *Simulation) assignBehavior(agent *Agent, b steering.Behavior, targetID uint64) error {
	if !b.Valid() {
		return fmt.Errorf("%w: %s", steering.ErrUnknownBehavior, b)
	}

	var target *Agent
	if b.NeedsTarget() {
		if targetID == 0 {
			return fmt.Errorf("%w: %s needs a target agent", steering.ErrMissingTarget, b)
		}
		if targetID == agent.ID() {
			return fmt.Errorf("%w: %s cannot target itself", steering.ErrMissingTarget, b)
		}
		t, ok := s.agents[targetID]
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownAgent, targetID)
		}
		target = t
	}

	agent.behavior = b
	agent.target = target
	agent.reached = false
	return nil
}

// Start marks the simulation active.
func (s *Simulation) Start() error {
	s.EntityLock.Lock()
	switch s.Status {
	case StatusStopped:
		s.EntityLock.Unlock()
		return ErrNotRunning
	case StatusActive:
		s.EntityLock.Unlock()
		return nil
	}
	s.Status = StatusActive
	s.EntityLock.Unlock()

	s.logger.Info(s.logCtx, "simulation started", "agents", len(s.Agents()))
	s.EventBus.Publish(&event.BaseEvent{
		EventType: event.SimulationStarted,
		Source:    s,
	})
	return nil
}

// Stop halts the simulation. A stopped simulation cannot be restarted.
func (s *Simulation) Stop() error {
	s.EntityLock.Lock()
	if s.Status != StatusActive {
		s.EntityLock.Unlock()
		return ErrNotRunning
	}
	s.Status = StatusStopped
	tick, elapsed := s.CurrentTick, s.ElapsedTime
	s.EntityLock.Unlock()

	s.logger.Info(s.logCtx, "simulation stopped", "tick", tick, "elapsed", elapsed)
	s.EventBus.Publish(&event.BaseEvent{
		EventType: event.SimulationStopped,
		Source:    s,
	})
	return nil
}

// Step advances every agent by dt seconds. A non-positive dt uses TimeStep,
// and dt is capped at MaxDeltaTime. Events are published after the frame is
// complete and the lock released, so handlers may query the simulation.
func (s *Simulation) Step(dt float64) {
	if dt <= 0 {
		dt = s.TimeStep
	}
	if dt > s.MaxDeltaTime {
		dt = s.MaxDeltaTime
	}

	s.EntityLock.Lock()
	s.system.delta = dt
	s.world.Update(float32(dt))
	s.CurrentTick++
	s.ElapsedTime += dt
	tick, elapsed := s.CurrentTick, s.ElapsedTime

	var reached []*event.TargetEvent
	if len(s.system.reached) > 0 {
		positions := s.system.snapshot()
		for _, a := range s.system.reached {
			goal, _ := a.goal(positions)
			reached = append(reached, event.NewTargetEvent(s, a.ID(), a.TargetID(), goal, a.Body.Position().Distance(goal), tick))
		}
	}
	frame := s.frameLocked()
	s.EntityLock.Unlock()

	for _, e := range reached {
		s.logger.Info(s.logCtx, "target reached", "agent", e.AgentID, "target", e.TargetID, "tick", e.Tick)
		s.EventBus.Publish(e)
	}
	s.EventBus.Publish(event.NewTickEvent(s, tick, elapsed, frame))
}

// Run advances the simulation by ticks fixed steps, starting it if needed.
// It returns early with the context's error when ctx is cancelled.
func (s *Simulation) Run(ctx context.Context, ticks int) error {
	if err := s.Start(); err != nil {
		return err
	}
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Step(s.TimeStep)
	}
	return nil
}

// RunRealtime advances the simulation on a wall-clock ticker until ctx is
// done. Each step uses the measured time since the previous one, capped at
// MaxDeltaTime.
func (s *Simulation) RunRealtime(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", interval)
	}
	if err := s.Start(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if err := ctx.Err(); err != nil {
				return err
			}
			s.Step(s.calculateDeltaTime(last, now))
			last = now
		}
	}
}

// calculateDeltaTime calculates the time between two ticks and caps it.
func (s *Simulation) calculateDeltaTime(last, now time.Time) float64 {
	deltaTime := now.Sub(last).Seconds()
	if deltaTime > s.MaxDeltaTime {
		deltaTime = s.MaxDeltaTime
	}
	return deltaTime
}

// Snapshot returns the state of every agent in insertion order.
func (s *Simulation) Snapshot() []AgentState {
	s.EntityLock.RLock()
	defer s.EntityLock.RUnlock()
	return s.frameLocked()
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() uint64 {
	s.EntityLock.RLock()
	defer s.EntityLock.RUnlock()
	return s.CurrentTick
}

func (s *Simulation) frameLocked() []AgentState {
	frame := make([]AgentState, len(s.system.agents))
	for i, a := range s.system.agents {
		frame[i] = a.state()
	}
	return frame
}
