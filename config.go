package lumina

import (
	"log/slog"

	"github.com/lumina-dev/lumina/pkg/hydrate"
	"github.com/lumina-dev/lumina/pkg/ssr"
)

// Config is the main framework configuration.
// This is the user-friendly entry point for configuring a Lumina app.
type Config struct {
	// DevMode exposes stack traces in serialized errors.
	// SECURITY: NEVER use in production - stacks leak file paths and
	// internal structure to every client.
	DevMode bool

	// HydrationGlobal is the window global the payload is embedded under.
	// Default: "__LUMINA_DATA__".
	HydrationGlobal string

	// Logger is the structured logger for the framework.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Scheduler controls how the hydration commit is scheduled.
	// If nil, commits run on a background timer.
	Scheduler hydrate.Scheduler
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DevMode:         false,
		HydrationGlobal: ssr.DefaultGlobal,
	}
}

// withDefaults fills the zero-value fields.
func (c Config) withDefaults() Config {
	if c.HydrationGlobal == "" {
		c.HydrationGlobal = ssr.DefaultGlobal
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Scheduler == nil {
		c.Scheduler = hydrate.DefaultScheduler
	}
	return c
}
