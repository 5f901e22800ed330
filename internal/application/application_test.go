package application

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateDir_HomeOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, home)
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	dir, err := StateDir()
	require.NoError(t, err)
	require.Equal(t, home, dir)

	path, err := StatePath("history.db")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "history.db"), path)
}

func TestStateDir_RelativeHomeIsAbsolute(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(HomeEnv, "state")

	dir, err := StateDir()
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(dir))
	require.Equal(t, "state", filepath.Base(dir))
}

func TestStateDir_XDGStateHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG_STATE_HOME is not consulted on Windows")
	}

	xdg := t.TempDir()
	t.Setenv(HomeEnv, "")
	t.Setenv("XDG_STATE_HOME", xdg)

	dir, err := StateDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(xdg, Name), dir)

	t.Setenv("XDG_STATE_HOME", "relative/state")

	dir, err = StateDir()
	if err != nil {
		t.Skip("no user config directory")
	}

	require.NotEqual(t, filepath.Join("relative/state", Name), dir)
	require.Equal(t, Name, filepath.Base(dir))
}
