package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/opd-ai/go-steering/pkg/logging"
)

// EnvPrefix is the prefix of every environment override, e.g. STEER_SIM_TICKS.
const EnvPrefix = "STEER"

// Runtime holds process-level settings that are not part of a scenario.
type Runtime struct {
	Log LogConfig `mapstructure:"log"`
	Sim SimConfig `mapstructure:"sim"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// SimConfig configures how a scenario is driven.
type SimConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval"` // wall-clock interval in realtime mode
	MaxDelta     time.Duration `mapstructure:"max_delta"`     // cap on a single tick's delta
	Ticks        int           `mapstructure:"ticks"`         // overrides the scenario when > 0
}

// SetDefaults registers the default runtime settings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 7)
	v.SetDefault("log.compress", false)

	v.SetDefault("sim.tick_interval", "20ms")
	v.SetDefault("sim.max_delta", "50ms")
	v.SetDefault("sim.ticks", 0)
}

// BindEnv makes every key overridable through STEER_* environment variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// NewRuntimeFromViper unmarshals and validates the runtime settings held by v.
func NewRuntimeFromViper(v *viper.Viper) (*Runtime, error) {
	var rt Runtime
	if err := v.Unmarshal(&rt); err != nil {
		return nil, fmt.Errorf("error unmarshaling runtime config: %w", err)
	}
	if err := rt.Validate(); err != nil {
		return nil, fmt.Errorf("invalid runtime config: %w", err)
	}
	return &rt, nil
}

// Validate checks the runtime settings for sane values.
func (r *Runtime) Validate() error {
	if r.Sim.TickInterval <= 0 {
		return fmt.Errorf("sim.tick_interval must be positive")
	}
	if r.Sim.MaxDelta < r.Sim.TickInterval {
		return fmt.Errorf("sim.max_delta (%s) must not be below sim.tick_interval (%s)", r.Sim.MaxDelta, r.Sim.TickInterval)
	}
	if r.Sim.Ticks < 0 {
		return fmt.Errorf("sim.ticks must not be negative")
	}
	switch strings.ToLower(r.Log.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", r.Log.Format)
	}
	return nil
}

// LoggerOptions converts the log settings for logging.New.
func (r *Runtime) LoggerOptions() logging.Options {
	return logging.Options{
		Level:      r.Log.Level,
		Format:     r.Log.Format,
		File:       r.Log.File,
		MaxSizeMB:  r.Log.MaxSize,
		MaxBackups: r.Log.MaxBackups,
		MaxAgeDays: r.Log.MaxAge,
		Compress:   r.Log.Compress,
	}
}
