package ui

import (
	"testing"
)

func TestNewThemeProvider_Default(t *testing.T) {
	tp := NewThemeProvider("")

	if tp.CurrentName() != DefaultTheme {
		t.Errorf("expected default theme %q, got %q", DefaultTheme, tp.CurrentName())
	}
}

func TestNewThemeProvider_WithTheme(t *testing.T) {
	tp := NewThemeProvider("nord")

	if tp.CurrentName() != "nord" {
		t.Errorf("expected theme 'nord', got %q", tp.CurrentName())
	}
}

func TestNewThemeProvider_UnknownThemeFallsBack(t *testing.T) {
	tp := NewThemeProvider("nonexistent-theme-xyz")

	if tp.CurrentName() != DefaultTheme {
		t.Errorf("expected fallback to %q, got %q", DefaultTheme, tp.CurrentName())
	}
}

func TestThemeProvider_SetTheme(t *testing.T) {
	tp := NewThemeProvider("")

	if !tp.SetTheme("nord") {
		t.Error("expected SetTheme to return true for a known theme")
	}
	if tp.CurrentName() != "nord" {
		t.Errorf("expected theme 'nord', got %q", tp.CurrentName())
	}

	if tp.SetTheme("nonexistent-theme-xyz") {
		t.Error("expected SetTheme to return false for an unknown theme")
	}
	if tp.CurrentName() != "nord" {
		t.Errorf("unknown theme must not change the current one, got %q", tp.CurrentName())
	}
}

func TestThemeProvider_AvailableThemes(t *testing.T) {
	tp := NewThemeProvider("")
	themes := tp.AvailableThemes()

	if len(themes) == 0 {
		t.Fatal("expected at least one theme")
	}
	found := false
	for i, name := range themes {
		if i > 0 && themes[i-1] > name {
			t.Errorf("themes not sorted: %q before %q", themes[i-1], name)
		}
		if name == DefaultTheme {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %q in available themes", DefaultTheme)
	}
}

func TestThemeProvider_StylesAndDisplayName(t *testing.T) {
	tp := NewThemeProvider("dracula")

	styles := tp.Styles()
	if styles.App.GetPaddingTop() == 0 {
		t.Error("expected App style to have padding")
	}
	if tp.CurrentDisplayName() == "" {
		t.Error("expected non-empty display name")
	}
}
