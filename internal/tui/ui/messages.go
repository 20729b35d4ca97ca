package ui

import "github.com/xolan/shifttrack/internal/profile"

// ThemeChangeRequestMsg is sent when a theme change is requested.
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// LoggedInMsg is sent once a profile has signed in or signed up.
type LoggedInMsg struct {
	Profile profile.Profile
}

// LogoutRequestMsg asks the root model to end the session.
type LogoutRequestMsg struct{}
