// Package app holds application-wide identifiers.
package app

import "github.com/xolan/shifttrack/internal/osutil"

// Name is the application name; it is also the name of the config directory.
const Name = "shifttrack"

// Dir returns the application directory under the user config dir.
func Dir() (string, error) {
	return osutil.ConfigSubdir(Name)
}
