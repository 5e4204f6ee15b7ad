// Package trace records simulation frames from the event bus and encodes
// them as JSON for offline inspection.
package trace

import (
	"fmt"
	"io"
	"sync"

	json "github.com/json-iterator/go"

	"github.com/opd-ai/go-steering/pkg/event"
	"github.com/opd-ai/go-steering/pkg/physics"
)

// Frame is the state of every agent after one tick.
type Frame struct {
	Tick    uint64             `json:"tick"`
	Elapsed float64            `json:"elapsed"`
	Agents  []event.AgentState `json:"agents"`
}

// Arrival records a TargetReached event.
type Arrival struct {
	Tick     uint64           `json:"tick"`
	AgentID  uint64           `json:"agent_id"`
	TargetID uint64           `json:"target_id,omitempty"`
	Point    physics.Vector2D `json:"point"`
	Distance float64          `json:"distance"`
}

// Trace is the encoded form of a recording.
type Trace struct {
	RunID    string    `json:"run_id,omitempty"`
	Scenario string    `json:"scenario,omitempty"`
	Frames   []Frame   `json:"frames"`
	Arrivals []Arrival `json:"arrivals"`
}

// Options configures a Recorder.
type Options struct {
	Every     int // keep every Nth tick; values below 1 keep all
	MaxFrames int // oldest frames are dropped beyond this; zero is unbounded
	RunID     string
	Scenario  string
}

// Recorder collects TickCompleted and TargetReached events from a bus.
type Recorder struct {
	mu       sync.Mutex
	opts     Options
	frames   []Frame
	arrivals []Arrival
	subs     []*event.Subscription
}

// NewRecorder subscribes a new recorder to bus.
func NewRecorder(bus *event.Bus, opts Options) *Recorder {
	if opts.Every < 1 {
		opts.Every = 1
	}
	r := &Recorder{opts: opts}
	r.subs = append(r.subs,
		bus.Subscribe(event.TickCompleted, r.onTick),
		bus.Subscribe(event.TargetReached, r.onTargetReached),
	)
	return r
}

func (r *Recorder) onTick(e event.Event) {
	tick, ok := e.(*event.TickEvent)
	if !ok || tick.Tick%uint64(r.opts.Every) != 0 {
		return
	}

	agents := make([]event.AgentState, len(tick.Agents))
	copy(agents, tick.Agents)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, Frame{Tick: tick.Tick, Elapsed: tick.Elapsed, Agents: agents})
	if r.opts.MaxFrames > 0 && len(r.frames) > r.opts.MaxFrames {
		r.frames = append(r.frames[:0:0], r.frames[len(r.frames)-r.opts.MaxFrames:]...)
	}
}

func (r *Recorder) onTargetReached(e event.Event) {
	reached, ok := e.(*event.TargetEvent)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.arrivals = append(r.arrivals, Arrival{
		Tick:     reached.Tick,
		AgentID:  reached.AgentID,
		TargetID: reached.TargetID,
		Point:    reached.Point,
		Distance: reached.Distance,
	})
}

// Close stops recording. Frames already captured are kept.
func (r *Recorder) Close() {
	r.mu.Lock()
	subs := r.subs
	r.subs = nil
	r.mu.Unlock()

	for _, sub := range subs {
		sub.Cancel()
	}
}

// Frames returns a copy of the recorded frames.
func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// Arrivals returns a copy of the recorded arrivals.
func (r *Recorder) Arrivals() []Arrival {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Arrival, len(r.arrivals))
	copy(out, r.arrivals)
	return out
}

// Trace returns everything recorded so far.
func (r *Recorder) Trace() Trace {
	return Trace{
		RunID:    r.opts.RunID,
		Scenario: r.opts.Scenario,
		Frames:   r.Frames(),
		Arrivals: r.Arrivals(),
	}
}

// Encode writes the recording to w as indented JSON.
func (r *Recorder) Encode(w io.Writer) error {
	enc := json.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.Trace()); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}
	return nil
}

// Decode reads a trace written by Encode.
func Decode(rd io.Reader) (*Trace, error) {
	var t Trace
	if err := json.ConfigCompatibleWithStandardLibrary.NewDecoder(rd).Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}
	return &t, nil
}
