package config

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"
)

// MaxAgentNameLen is the longest agent name a scenario may use.
const MaxAgentNameLen = 32

// Letters, digits, hyphens, underscores and dots, starting with a letter or digit.
var validAgentName = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.]*$`)

// ValidateAgentName reports whether name can identify an agent in a scenario,
// a target reference or the terminal HUD.
func ValidateAgentName(name string) error {
	if name == "" {
		return fmt.Errorf("agent name cannot be empty")
	}
	if len(name) > MaxAgentNameLen {
		return fmt.Errorf("agent name too long: %d characters (max %d)", len(name), MaxAgentNameLen)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("agent name contains invalid UTF-8 characters")
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return fmt.Errorf("agent name %q contains whitespace or control characters", name)
		}
	}
	if !validAgentName.MatchString(name) {
		return fmt.Errorf("agent name %q contains invalid characters (only letters, digits, hyphens, underscores and dots allowed)", name)
	}
	return nil
}
