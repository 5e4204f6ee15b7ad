// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-steering/pkg/physics"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	AgentAdded        Type = "agent_added"
	AgentRemoved      Type = "agent_removed"
	BehaviorChanged   Type = "behavior_changed"
	TargetReached     Type = "target_reached"
	TickCompleted     Type = "tick_completed"
	SimulationStarted Type = "simulation_started"
	SimulationStopped Type = "simulation_stopped"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it from the bus.
type Subscription struct {
	ID        uint64
	EventType Type
	Cancel    func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	sub := &Subscription{ID: id, EventType: eventType}
	sub.Cancel = func() { b.Unsubscribe(sub) }
	return sub
}

// Unsubscribe removes the handler behind sub. Unknown or already cancelled
// subscriptions are ignored.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[sub.EventType]
	for i, r := range regs {
		if r.id == sub.ID {
			kept := make([]registration, 0, len(regs)-1)
			kept = append(kept, regs[:i]...)
			kept = append(kept, regs[i+1:]...)
			if len(kept) == 0 {
				delete(b.handlers, sub.EventType)
			} else {
				b.handlers[sub.EventType] = kept
			}
			return
		}
	}
}

// Publish sends an event to all subscribed handlers. Handlers run on the
// caller's goroutine, in subscription order.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	// regs is never mutated in place, so it is safe to range without the lock
	for _, r := range regs {
		r.handler(event)
	}
}

// Specific event implementations

// AgentState is the per-agent frame carried by tick events.
type AgentState struct {
	ID         uint64           `json:"id"`
	Name       string           `json:"name"`
	Behavior   string           `json:"behavior"`
	Position   physics.Vector2D `json:"position"`
	Velocity   physics.Vector2D `json:"velocity"`
	Heading    physics.Vector2D `json:"heading"`
	Course     float64          `json:"course"`
	CourseText string           `json:"course_text"`
	Speed      float64          `json:"speed"`
}

// AgentEvent contains information about agent lifecycle and behavior changes
type AgentEvent struct {
	BaseEvent
	AgentID  uint64
	Name     string
	Behavior string
	TargetID uint64
}

// NewAgentEvent creates a new agent event
func NewAgentEvent(eventType Type, source interface{}, agentID uint64, name, behavior string, targetID uint64) *AgentEvent {
	return &AgentEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		AgentID:  agentID,
		Name:     name,
		Behavior: behavior,
		TargetID: targetID,
	}
}

// TargetEvent is published when an agent comes within capture or arrival
// range of its target. TargetID is zero for static points.
type TargetEvent struct {
	BaseEvent
	AgentID  uint64
	TargetID uint64
	Point    physics.Vector2D
	Distance float64
	Tick     uint64
}

// NewTargetEvent creates a new target reached event
func NewTargetEvent(source interface{}, agentID, targetID uint64, point physics.Vector2D, distance float64, tick uint64) *TargetEvent {
	return &TargetEvent{
		BaseEvent: BaseEvent{
			EventType: TargetReached,
			Source:    source,
		},
		AgentID:  agentID,
		TargetID: targetID,
		Point:    point,
		Distance: distance,
		Tick:     tick,
	}
}

// TickEvent carries the state of every agent after a completed tick
type TickEvent struct {
	BaseEvent
	Tick    uint64
	Elapsed float64
	Agents  []AgentState
}

// NewTickEvent creates a new tick completed event
func NewTickEvent(source interface{}, tick uint64, elapsed float64, agents []AgentState) *TickEvent {
	return &TickEvent{
		BaseEvent: BaseEvent{
			EventType: TickCompleted,
			Source:    source,
		},
		Tick:    tick,
		Elapsed: elapsed,
		Agents:  agents,
	}
}
