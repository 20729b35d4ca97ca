package cli

import (
	"io"
	"os"

	"github.com/xolan/shifttrack/internal/config"
	"github.com/xolan/shifttrack/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// Services
	Services *service.Services
	Config   config.Config

	// Profile overrides the active profile when set (--profile flag)
	Profile string
}

// NewDeps creates a new Deps writing to the process streams
func NewDeps(services *service.Services, cfg config.Config) *Deps {
	return &Deps{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Stdin:    os.Stdin,
		Exit:     os.Exit,
		Services: services,
		Config:   cfg,
	}
}

// WithIO replaces the streams and exit function, returning d.
func (d *Deps) WithIO(stdout, stderr io.Writer, stdin io.Reader, exit func(code int)) *Deps {
	d.Stdout = stdout
	d.Stderr = stderr
	d.Stdin = stdin
	d.Exit = exit
	return d
}
