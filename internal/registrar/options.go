package registrar

import (
	"log/slog"
	"strings"
)

// DefaultCommandPrefix is the namespace prepended to every command name by default.
const DefaultCommandPrefix = "cmd:"

// config stores resolved registrar settings after option application.
type config struct {
	commandPrefix string
	logger        *slog.Logger
}

// Option mutates registrar construction configuration.
type Option func(*config)

func defaultConfig() config {
	return config{
		commandPrefix: DefaultCommandPrefix,
		logger:        slog.Default(),
	}
}

// WithCommandPrefix configures the namespace prefix such as "cmd:" or "stk:".
//
// Blank values are ignored; malformed values are rejected by New.
func WithCommandPrefix(prefix string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(prefix) != "" {
			cfg.commandPrefix = prefix
		}
	}
}

// WithLogger configures the logger used for registration and dispatch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
