// Package osutil wraps the filesystem calls used to locate application
// directories so tests can substitute failing implementations.
package osutil

import (
	"os"
	"path/filepath"
)

// PathProvider resolves and creates directories.
type PathProvider interface {
	UserConfigDir() (string, error)
	MkdirAll(path string, perm os.FileMode) error
}

// DefaultPathProvider delegates to the os package.
type DefaultPathProvider struct{}

// UserConfigDir returns os.UserConfigDir().
func (DefaultPathProvider) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

// MkdirAll returns os.MkdirAll(path, perm).
func (DefaultPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Provider is used by every path lookup in the application.
var Provider PathProvider = DefaultPathProvider{}

// SetProvider replaces Provider.
func SetProvider(p PathProvider) {
	Provider = p
}

// ResetProvider restores DefaultPathProvider.
func ResetProvider() {
	Provider = DefaultPathProvider{}
}

// ConfigSubdir returns <user config dir>/<name>, creating it with 0755 if needed.
func ConfigSubdir(name string) (string, error) {
	configDir, err := Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(configDir, name)
	if err := Provider.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// EnsureDir creates dir with 0755 if it does not exist and returns it unchanged.
func EnsureDir(dir string) (string, error) {
	if err := Provider.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
