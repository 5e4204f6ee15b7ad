package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-steering/pkg/config"
	"github.com/opd-ai/go-steering/pkg/engine"
	"github.com/opd-ai/go-steering/pkg/event"
	"github.com/opd-ai/go-steering/pkg/render"
	"github.com/opd-ai/go-steering/pkg/trace"
)

type runOptions struct {
	configPath string
	ticks      int
	out        string
	every      int
	render     bool
	realtime   bool
	width      int
	height     int
	scale      float64
}

func newRunCmd(a *app) *cobra.Command {
	var o runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scenario and report where every agent ended up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "scenario file (YAML or JSON); the built-in pursuit scenario when empty")
	f.IntVarP(&o.ticks, "ticks", "n", 0, "ticks to run, overriding sim.ticks and the scenario")
	f.StringVarP(&o.out, "out", "o", "", "write a JSON trace of the run to this file")
	f.IntVar(&o.every, "every", 1, "record and render every Nth tick")
	f.BoolVar(&o.render, "render", false, "draw frames to the terminal")
	f.BoolVar(&o.realtime, "realtime", false, "step on the wall clock at sim.tick_interval")
	f.IntVar(&o.width, "width", 80, "render width in cells")
	f.IntVar(&o.height, "height", 24, "render height in cells")
	f.Float64Var(&o.scale, "scale", 2, "meters per render cell")
	return cmd
}

func (a *app) loadScenario(path string) (*config.Scenario, error) {
	if path == "" {
		a.logger.Info(a.ctx, "no scenario file given, using the default scenario")
		return config.DefaultScenario(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("scenario file %s does not exist", path)
	}
	s, err := config.LoadScenario(path)
	if err != nil {
		a.logger.Error(a.ctx, "failed to load scenario", err, "config_path", path)
		return nil, err
	}
	return s, nil
}

// tickBudget resolves the tick count: the flag wins, then sim.ticks, then
// the scenario itself.
func (a *app) tickBudget(flagTicks int, s *config.Scenario) int {
	switch {
	case flagTicks > 0:
		return flagTicks
	case a.runtime.Sim.Ticks > 0:
		return a.runtime.Sim.Ticks
	default:
		return s.Ticks
	}
}

func (a *app) run(cmd *cobra.Command, o runOptions) error {
	scenario, err := a.loadScenario(o.configPath)
	if err != nil {
		return err
	}
	ticks := a.tickBudget(o.ticks, scenario)

	sim, err := engine.FromScenario(scenario, a.logger)
	if err != nil {
		return err
	}
	sim.MaxDeltaTime = a.runtime.Sim.MaxDelta.Seconds()

	rec := trace.NewRecorder(sim.EventBus, trace.Options{
		Every:    o.every,
		RunID:    sim.RunID,
		Scenario: scenario.Name,
	})
	defer rec.Close()

	out := cmd.OutOrStdout()
	if o.render {
		sub := a.attachRenderer(sim, out, o)
		defer sub.Cancel()
	}

	ctx, stop := signal.NotifyContext(a.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if o.realtime {
		err = a.runRealtime(ctx, sim, ticks)
	} else {
		err = sim.Run(ctx, ticks)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err := sim.Stop(); err != nil {
		return err
	}

	if o.out != "" {
		if err := writeTrace(rec, o.out); err != nil {
			a.logger.Error(a.ctx, "failed to write trace", err, "path", o.out)
			return err
		}
		a.logger.Info(a.ctx, "trace written", "path", o.out, "frames", len(rec.Frames()))
	}

	fmt.Fprintf(out, "scenario %s: %d ticks, %.2fs simulated, %d arrivals\n",
		scenario.Name, sim.Tick(), sim.ElapsedTime, len(rec.Arrivals()))
	return printAgents(out, sim.Snapshot())
}

// runRealtime steps on the wall clock until ticks steps have completed or ctx
// is cancelled.
func (a *app) runRealtime(ctx context.Context, sim *engine.Simulation, ticks int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sub := sim.EventBus.Subscribe(event.TickCompleted, func(e event.Event) {
		if te, ok := e.(*event.TickEvent); ok && ticks > 0 && te.Tick >= uint64(ticks) {
			cancel()
		}
	})
	defer sub.Cancel()

	a.logger.Info(a.ctx, "running in realtime", "interval", a.runtime.Sim.TickInterval.String(), "ticks", ticks)
	return sim.RunRealtime(ctx, a.runtime.Sim.TickInterval)
}

func (a *app) attachRenderer(sim *engine.Simulation, out io.Writer, o runOptions) *event.Subscription {
	r := render.NewTerminalRenderer(out, o.width, o.height, o.scale)
	r.ClearScreen = o.realtime
	every := uint64(max(o.every, 1))

	return sim.EventBus.Subscribe(event.TickCompleted, func(e event.Event) {
		te, ok := e.(*event.TickEvent)
		if !ok || te.Tick%every != 0 {
			return
		}
		if err := render.RenderFrame(r, te.Agents); err != nil {
			a.logger.Warn(a.ctx, "render failed", "tick", te.Tick, "error", err.Error())
		}
	})
}

func writeTrace(rec *trace.Recorder, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return rec.Encode(f)
}

func printAgents(out io.Writer, agents []event.AgentState) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AGENT\tBEHAVIOR\tX\tY\tCOURSE\tSPEED")
	for _, s := range agents {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%s\t%.2f\n",
			s.Name, s.Behavior, s.Position.X, s.Position.Y, s.CourseText, s.Speed)
	}
	return w.Flush()
}
