package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/opd-ai/go-steering/pkg/config"
	"github.com/opd-ai/go-steering/pkg/logging"
)

// app carries the state shared by every subcommand once the root's
// PersistentPreRunE has run.
type app struct {
	v       *viper.Viper
	runtime *config.Runtime
	logger  *logging.Logger
	ctx     context.Context
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "steersim",
		Short:         "steersim runs 2D steering-behavior scenarios.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", "console", "log format: console or json")
	flags.String("log-file", "", "also write JSON logs to this rotating file")

	root.AddCommand(
		newRunCmd(a),
		newDemoCmd(a),
		newInitCmd(a),
		newBehaviorsCmd(),
	)
	return root
}

// initialize binds the persistent flags and STEER_* environment variables to
// viper, then builds the runtime settings and the logger.
func (a *app) initialize(cmd *cobra.Command) error {
	config.SetDefaults(a.v)
	config.BindEnv(a.v)

	flags := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{
		"log.level":  "log-level",
		"log.format": "log-format",
		"log.file":   "log-file",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	rt, err := config.NewRuntimeFromViper(a.v)
	if err != nil {
		return err
	}
	a.runtime = rt

	opts := rt.LoggerOptions()
	opts.Output = cmd.ErrOrStderr()
	a.logger = logging.New(opts).Named("steersim")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a.ctx = logging.WithCorrelationID(ctx, logging.GenerateCorrelationID())
	return nil
}
