package logging

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Encoder formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config controls how diagnostics are encoded.
type Config struct {
	Level  zapcore.Level
	Format string

	// Redact scrubs sensitive keys and token-shaped values from every entry.
	Redact bool

	// SensitiveKeys are field names whose values are never written.
	// Matching ignores case.
	SensitiveKeys []string
}

// NewDefaultConfig returns warn-level console output with redaction on.
func NewDefaultConfig() *Config {
	return &Config{
		Level:         zapcore.WarnLevel,
		Format:        FormatConsole,
		Redact:        true,
		SensitiveKeys: []string{"token", "password", "secret", "authorization", "api_key"},
	}
}

// Validate reports an unknown format.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatConsole, FormatJSON:
		return nil
	default:
		return fmt.Errorf("log format must be %q or %q, got %q", FormatConsole, FormatJSON, c.Format)
	}
}
