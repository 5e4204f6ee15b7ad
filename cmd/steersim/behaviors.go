package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-steering/pkg/steering"
)

func newBehaviorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "behaviors",
		Short: "List the steering behaviors and what each one needs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "BEHAVIOR\tNEEDS")
			for _, b := range steering.Behaviors() {
				fmt.Fprintf(w, "%s\t%s\n", b, requirement(b))
			}
			return w.Flush()
		},
	}
}

func requirement(b steering.Behavior) string {
	switch {
	case b.NeedsTarget():
		return "target agent"
	case b.NeedsPoint():
		return "target point"
	default:
		return "-"
	}
}
