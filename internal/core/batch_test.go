package core

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/inovacc/miniature/internal/registry"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, env *testEnv) string {
	t.Helper()

	path := env.path("packages.json")
	writeFile(t, path, fmt.Sprintf(`{
    "packages": {
        "alpha": {"db-repo": %[1]q, "root-dir": "alpha", "version": "latest", "target-dir": %[2]q},
        "beta": {"db-repo": %[1]q, "root-dir": "beta", "target-dir": %[3]q},
        "norepo": {"root-dir": "gamma"},
        "unregistered": {"db-repo": "https://example.com/other.git", "root-dir": "x"}
    }
}`, testRepo, env.path("out", "alpha"), env.path("out", "beta")))

	return path
}

func seedBatch(env *testEnv) {
	env.vcs.Tags["alpha/1.0.0"] = snapshot{"alpha/a.txt": "a1", "beta/b.txt": "b-old"}
	env.vcs.Tags["alpha/1.1.0"] = snapshot{"alpha/a.txt": "a2", "beta/b.txt": "b-old"}
	env.vcs.Branches["main"] = snapshot{"alpha/a.txt": "main", "beta/b.txt": "b-main"}
}

func TestLoadAll_PartialFailure(t *testing.T) {
	env := newTestEnv(t)
	seedBatch(env)

	batch, err := env.engine.LoadAll(context.Background(), BatchOptions{
		ManifestPath: writeManifest(t, env),
		Names:        []string{"alpha", "missing", "beta"},
	})
	require.NoError(t, err)
	require.False(t, batch.Success)
	require.Equal(t, 2, batch.Succeeded)
	require.Equal(t, 3, batch.Total)
	require.Equal(t, "Loaded 2/3 packages (some failed)", batch.Message)
	require.Equal(t, []string{"alpha", "missing", "beta"}, batch.Order)

	require.Equal(t, "alpha/1.1.0", batch.Results["alpha"].Version)
	require.Equal(t, "main", batch.Results["beta"].Version)
	require.False(t, batch.Results["missing"].Success)
	require.Contains(t, batch.Results["missing"].Message, "not found in manifest")

	require.Equal(t, "a2", readFile(t, env.path("out", "alpha", "a.txt")))
	require.Equal(t, "b-main", readFile(t, env.path("out", "beta", "b.txt")))
}

func TestLoadAll_AllEntriesSorted(t *testing.T) {
	env := newTestEnv(t)
	seedBatch(env)

	batch, err := env.engine.LoadAll(context.Background(), BatchOptions{ManifestPath: writeManifest(t, env)})
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta", "norepo", "unregistered"}, batch.Order)
	require.Equal(t, 2, batch.Succeeded)
	require.Equal(t, 4, batch.Total)

	require.Contains(t, batch.Results["norepo"].Message, "No 'db-repo' found")

	unregistered := batch.Results["unregistered"]
	require.False(t, unregistered.Success)
	require.ErrorIs(t, unregistered.Err, registry.ErrNotRegistered)
	require.Equal(t, "main", unregistered.Version)
	require.Equal(t, "x", unregistered.TargetDir)
}

func TestLoadAll_Success(t *testing.T) {
	env := newTestEnv(t)
	seedBatch(env)

	batch, err := env.engine.LoadAll(context.Background(), BatchOptions{
		ManifestPath: writeManifest(t, env),
		Names:        []string{"beta", "alpha", "beta"},
	})
	require.NoError(t, err)
	require.True(t, batch.Success)
	require.Equal(t, "Loaded 2/2 packages", batch.Message)
	require.Equal(t, []string{"beta", "alpha"}, batch.Order)
}

func TestLoadAll_Clean(t *testing.T) {
	env := newTestEnv(t)
	seedBatch(env)

	stale := env.path("out", "alpha", "stale.txt")
	writeFile(t, stale, "x")

	batch, err := env.engine.LoadAll(context.Background(), BatchOptions{
		ManifestPath: writeManifest(t, env),
		Names:        []string{"alpha"},
		Clean:        true,
	})
	require.NoError(t, err)
	require.True(t, batch.Success)
	require.NoFileExists(t, stale)
}

func TestLoadAll_ManifestErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.engine.LoadAll(ctx, BatchOptions{ManifestPath: env.path("absent.json")})
	require.ErrorIs(t, err, ErrConfigMissing)

	noPackages := env.path("empty.json")
	writeFile(t, noPackages, `{"pkgs": {}}`)

	_, err = env.engine.LoadAll(ctx, BatchOptions{ManifestPath: noPackages})
	require.ErrorIs(t, err, ErrConfigMissing)
	require.ErrorContains(t, err, "packages")

	broken := filepath.Join(env.root, "broken.json")
	writeFile(t, broken, `[`)

	_, err = env.engine.LoadAll(ctx, BatchOptions{ManifestPath: broken})
	require.ErrorIs(t, err, ErrConfigMissing)
}
