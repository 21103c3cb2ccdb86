// Package paths resolves the configuration directory of the dblmodel CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the configuration directory under the platform config root.
const AppName = "dblmodel"

// EnvConfigDir overrides the configuration directory.
const EnvConfigDir = "DBLMODEL_CONFIG_DIR"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/dblmodel (fallback ~/.config/dblmodel)
// macOS:   ~/Library/Application Support/dblmodel
// Windows: %APPDATA%/dblmodel
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", AppName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// ResolveConfigDir returns the configuration directory: flag if set, else
// DBLMODEL_CONFIG_DIR if set, else the platform default. Explicit
// directories are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}
