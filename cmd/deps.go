package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/xolan/shifttrack/internal/config"
	"github.com/xolan/shifttrack/internal/service"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// ConfigPath locates the config file.
	ConfigPath func() (string, error)
	// OpenServices opens the configured store and builds the services.
	OpenServices func(configPath string, cfg config.Config, logger *slog.Logger) (*service.Services, error)
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Stdin:        os.Stdin,
		Exit:         os.Exit,
		ConfigPath:   config.GetConfigPath,
		OpenServices: service.Open,
	}
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}
