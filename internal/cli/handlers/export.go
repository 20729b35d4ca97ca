package handlers

import (
	"github.com/xolan/shifttrack/internal/cli"
	"github.com/xolan/shifttrack/internal/filter"
)

// Export writes the current profile's entries matching f to stdout
func Export(deps *cli.Deps, format string, f filter.Filter) {
	p, ok := currentProfile(deps)
	if !ok {
		return
	}

	if err := deps.Services.Export.Write(deps.Stdout, format, p.ID, f); err != nil {
		fail(deps, err)
	}
}
