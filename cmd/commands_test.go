package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestRootSubcommands(t *testing.T) {
	want := []string{
		"load", "load-all", "resolve", "tags", "tag", "push", "publish",
		"scan", "setup", "registry", "repo", "history", "auth",
	}

	names := make(map[string]bool)
	for _, c := range GetRootCmd().Commands() {
		names[c.Name()] = true
	}

	for _, name := range want {
		require.True(t, names[name], "missing command %q", name)
	}
}

func TestNestedSubcommands(t *testing.T) {
	tests := []struct {
		parent *cobra.Command
		want   []string
	}{
		{parent: tagCmd, want: []string{"create", "remove"}},
		{parent: registryCmd, want: []string{"list", "remove"}},
		{parent: repoCmd, want: []string{"create", "delete"}},
		{parent: authCmd, want: []string{"git-credential"}},
	}

	for _, tt := range tests {
		t.Run(tt.parent.Name(), func(t *testing.T) {
			for _, name := range tt.want {
				found, _, err := tt.parent.Find([]string{name})
				require.NoError(t, err)
				require.Equal(t, name, found.Name())
			}
		})
	}
}

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		flags []string
	}{
		{cmd: loadCmd, flags: []string{"version", "branch", "target", "clean", "scoped", "json"}},
		{cmd: loadAllCmd, flags: []string{"clean", "json"}},
		{cmd: resolveCmd, flags: []string{"scope"}},
		{cmd: tagCreateCmd, flags: []string{"message", "force", "push", "json"}},
		{cmd: tagRemoveCmd, flags: []string{"remote", "local-only", "json"}},
		{cmd: pushCmd, flags: []string{"meta", "message", "no-push", "json"}},
		{cmd: publishCmd, flags: []string{"meta", "message", "no-push", "no-tag", "force-tag", "skip-scan", "json"}},
		{cmd: registryRemoveCmd, flags: []string{"yes"}},
		{cmd: repoCreateCmd, flags: []string{"description", "private", "path"}},
		{cmd: historyCmd, flags: []string{"limit", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			for _, name := range tt.flags {
				require.NotNil(t, tt.cmd.Flags().Lookup(name), "missing flag --%s", name)
			}
		})
	}
}

func TestPublishHelpNamesVersionTag(t *testing.T) {
	require.Contains(t, publishCmd.Long, "{root-dir}/{version}")
	require.NotContains(t, publishCmd.Long, `"tag" field`)
}

// execute runs the root command in an empty directory with a private
// registry and history file.
func execute(t *testing.T, args ...string) error {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("MINIATURE_HISTORY_PATH", filepath.Join(dir, "history.db"))

	root := GetRootCmd()
	root.SetArgs(append([]string{"--registry", filepath.Join(dir, "gitdbs.json")}, args...))

	return root.Execute()
}

func TestRegistryListEmpty(t *testing.T) {
	require.NoError(t, execute(t, "registry", "list"))
}

func TestRegistryRemoveUnknown(t *testing.T) {
	require.NoError(t, execute(t, "registry", "remove", "https://example.com/acme/db.git", "--yes"))
}

func TestLoadUnregisteredRepository(t *testing.T) {
	err := execute(t, "load", "https://example.com/acme/db.git", "widgets", "--version", "latest")
	require.Error(t, err)
}

func TestLoadAllMissingManifest(t *testing.T) {
	err := execute(t, "load-all", "missing.json")
	require.Error(t, err)
}

func TestHistoryEmpty(t *testing.T) {
	require.NoError(t, execute(t, "history", "--limit", "5"))
}

func TestScanCleanDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# widgets\n"), 0o644))

	require.NoError(t, execute(t, "scan", dir))
}
