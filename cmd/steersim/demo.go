package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-steering/pkg/demo"
)

func newDemoCmd(a *app) *cobra.Command {
	var (
		state string
		ticks int
		list  bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the behavior demonstrations headless",
		Long: "Runs one demonstration with --state, or every demonstration " +
			"concurrently, and prints a summary per state.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				return printStates(out)
			}
			if ticks <= 0 {
				ticks = a.runtime.Sim.Ticks
			}

			if state != "" {
				s, err := demo.Find(state)
				if err != nil {
					return err
				}
				summary, err := demo.Run(a.ctx, s, ticks, a.logger)
				if err != nil {
					return err
				}
				return printSummaries(out, []demo.Summary{summary})
			}

			summaries, err := demo.RunAll(a.ctx, ticks, a.logger)
			if err != nil {
				return err
			}
			a.logger.Info(a.ctx, "demonstrations finished", "states", len(summaries))
			return printSummaries(out, summaries)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&state, "state", "s", "", "run only this demonstration")
	f.IntVarP(&ticks, "ticks", "n", 0, "ticks per demonstration; each state's own count when zero")
	f.BoolVarP(&list, "list", "l", false, "list the demonstrations in order and exit")
	return cmd
}

func printStates(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSTATE\tBEHAVIOR\tDESCRIPTION")
	for i, s := range demo.States() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, s.Name, s.Behavior, s.Description)
	}
	return w.Flush()
}

func printSummaries(out io.Writer, summaries []demo.Summary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STATE\tTICKS\tELAPSED\tARRIVALS\tAGENTS")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%d\t%.2fs\t%d\t%d\n", s.State, s.Ticks, s.Elapsed, s.Arrivals, len(s.Final))
	}
	return w.Flush()
}
