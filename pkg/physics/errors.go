package physics

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is matched by every ConfigError via errors.Is.
var ErrInvalidConfig = errors.New("invalid body configuration")

// ConfigError reports a physical limit that cannot describe a real body.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s=%g: %s", ErrInvalidConfig, e.Field, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidConfig) succeed.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
