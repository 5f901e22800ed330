// Package application names miniature and locates its per-user state.
package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// Name is the command name and the per-user directory name.
	Name = "miniature"

	// HomeEnv overrides the per-user state directory.
	HomeEnv = "MINIATURE_HOME"
)

// StateDir returns the directory for per-user state such as the load
// history. HomeEnv wins when set. Otherwise $XDG_STATE_HOME/miniature is used
// when XDG_STATE_HOME is an absolute path, then the user config directory
// (the local application data directory on Windows).
func StateDir() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return filepath.Abs(home)
	}

	if runtime.GOOS != "windows" {
		if xdg := os.Getenv("XDG_STATE_HOME"); filepath.IsAbs(xdg) {
			return filepath.Join(xdg, Name), nil
		}
	}

	base, err := userBase()
	if err != nil {
		return "", fmt.Errorf("no per-user directory (set %s): %w", HomeEnv, err)
	}

	return filepath.Join(base, Name), nil
}

// StatePath returns name inside StateDir. The directory is not created.
func StatePath(name string) (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, name), nil
}

func userBase() (string, error) {
	if runtime.GOOS == "windows" {
		return os.UserCacheDir()
	}

	return os.UserConfigDir()
}
