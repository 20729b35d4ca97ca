package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap_HelpText(t *testing.T) {
	keys := DefaultKeyMap()

	bindings := map[string]key.Binding{
		"Up": keys.Up, "Down": keys.Down,
		"NextTab": keys.NextTab, "PrevTab": keys.PrevTab,
		"Tab1": keys.Tab1, "Tab2": keys.Tab2, "Tab3": keys.Tab3, "Tab4": keys.Tab4,
		"Select": keys.Select, "Back": keys.Back, "Quit": keys.Quit, "ForceQuit": keys.ForceQuit,
		"Help": keys.Help, "Refresh": keys.Refresh, "Logout": keys.Logout,
		"NextField": keys.NextField, "PrevField": keys.PrevField, "SwitchForm": keys.SwitchForm,
		"Add": keys.Add, "Delete": keys.Delete, "Search": keys.Search,
		"ClockIn": keys.ClockIn, "ClockOut": keys.ClockOut, "Cancel": keys.Cancel,
		"Week": keys.Week, "Month": keys.Month, "Theme": keys.Theme,
	}

	for name, b := range bindings {
		t.Run(name, func(t *testing.T) {
			if len(b.Keys()) == 0 {
				t.Errorf("expected keys for binding %s", name)
			}
			help := b.Help()
			if help.Key == "" || help.Desc == "" {
				t.Errorf("expected help text for binding %s, got %+v", name, help)
			}
		})
	}
}

func TestKeyBindingsMatch(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		key     string
	}{
		{"Quit q", keys.Quit, "q"},
		{"ForceQuit ctrl+c", keys.ForceQuit, "ctrl+c"},
		{"Up k", keys.Up, "k"},
		{"Down j", keys.Down, "j"},
		{"Select enter", keys.Select, "enter"},
		{"Back esc", keys.Back, "esc"},
		{"Tab1 1", keys.Tab1, "1"},
		{"Tab4 4", keys.Tab4, "4"},
		{"Add a", keys.Add, "a"},
		{"Delete d", keys.Delete, "d"},
		{"Refresh r", keys.Refresh, "r"},
		{"Logout l", keys.Logout, "l"},
		{"ClockIn i", keys.ClockIn, "i"},
		{"ClockOut o", keys.ClockOut, "o"},
		{"Week w", keys.Week, "w"},
		{"Month m", keys.Month, "m"},
		{"SwitchForm ctrl+n", keys.SwitchForm, "ctrl+n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := false
			for _, k := range tt.binding.Keys() {
				if k == tt.key {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected binding %s to include key %s, got keys %v", tt.name, tt.key, tt.binding.Keys())
			}
		})
	}
}

func TestQuitDoesNotStealCtrlC(t *testing.T) {
	keys := DefaultKeyMap()

	for _, k := range keys.Quit.Keys() {
		if k == "ctrl+c" {
			t.Error("ctrl+c must only be bound to ForceQuit")
		}
	}
}
