package demo

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/go-steering/pkg/engine"
	"github.com/opd-ai/go-steering/pkg/event"
	"github.com/opd-ai/go-steering/pkg/logging"
)

// Summary is the outcome of running one demonstration headless.
type Summary struct {
	State    string
	RunID    string
	Ticks    uint64
	Elapsed  float64
	Arrivals int
	Final    []event.AgentState
}

// Run plays a single state for ticks steps; ticks <= 0 uses the scenario's own count.
func Run(ctx context.Context, state State, ticks int, logger *logging.Logger) (Summary, error) {
	sc := state.Scenario()
	if ticks <= 0 {
		ticks = sc.Ticks
	}

	sim, err := engine.FromScenario(sc, logger)
	if err != nil {
		return Summary{}, fmt.Errorf("demo %s: %w", state.Name, err)
	}

	arrivals := 0
	sim.EventBus.Subscribe(event.TargetReached, func(event.Event) { arrivals++ })

	if err := sim.Run(ctx, ticks); err != nil {
		return Summary{}, fmt.Errorf("demo %s: %w", state.Name, err)
	}
	if err := sim.Stop(); err != nil {
		return Summary{}, fmt.Errorf("demo %s: %w", state.Name, err)
	}

	return Summary{
		State:    state.Name,
		RunID:    sim.RunID,
		Ticks:    sim.Tick(),
		Elapsed:  sim.ElapsedTime,
		Arrivals: arrivals,
		Final:    sim.Snapshot(),
	}, nil
}

// RunAll plays every state concurrently and returns their summaries in state
// order. The first failure cancels the remaining runs.
func RunAll(ctx context.Context, ticks int, logger *logging.Logger) ([]Summary, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	all := States()
	summaries := make([]Summary, len(all))

	g, ctx := errgroup.WithContext(ctx)
	for i, state := range all {
		g.Go(func() error {
			summary, err := Run(ctx, state, ticks, logger)
			if err != nil {
				return err
			}
			summaries[i] = summary
			logger.Debug(ctx, "demo finished", "state", state.Name, "ticks", summary.Ticks, "arrivals", summary.Arrivals)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}
