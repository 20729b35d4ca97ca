package ui

import (
	"sort"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is the theme used when none is configured or the
// configured one is unknown.
const DefaultTheme = "dracula"

// ThemeProvider tracks the active bubbletint theme
type ThemeProvider struct {
	registry *tint.Registry
}

// NewThemeProvider creates a ThemeProvider showing name, or DefaultTheme
// when name is empty or unknown.
func NewThemeProvider(name string) *ThemeProvider {
	tints := tint.DefaultTints()

	fallback := lookupTint(tints, DefaultTheme)
	if fallback == nil && len(tints) > 0 {
		fallback = tints[0]
	}

	tp := &ThemeProvider{registry: tint.NewRegistry(fallback, tints...)}
	if name != "" {
		tp.SetTheme(name)
	}
	return tp
}

func lookupTint(tints []tint.Tint, id string) tint.Tint {
	for _, t := range tints {
		if t.ID() == id {
			return t
		}
	}
	return nil
}

// SetTheme switches to the theme with the given id.
// Returns false and keeps the current theme if the id is unknown.
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(name)
}

// CurrentName returns the id of the current theme.
func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// CurrentDisplayName returns the human-readable name of the current theme.
func (tp *ThemeProvider) CurrentDisplayName() string {
	return tp.registry.DisplayName()
}

// AvailableThemes returns the ids of all themes, sorted.
func (tp *ThemeProvider) AvailableThemes() []string {
	ids := tp.registry.TintIDs()
	sort.Strings(ids)
	return ids
}

// Styles returns the TUI styles for the current theme.
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}
