package cmd

import (
	"context"
	"fmt"

	"github.com/inovacc/miniature/internal/core"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load <db-repo> <path>",
	Short: "Load a package version from a registered repository",
	Long: `Check out a version of a registered repository and copy one of its
directories (or files) into a target directory.

The version may be:
  - an exact tag containing a slash   pkg/1.2.0
  - latest                            highest version among all tags
  - a range                           ">=1.0.0,<2.0.0", "!=1.1.0", "1.2.0"

Without --version the branch (default main) is checked out.

Examples:
  miniature load https://github.com/acme/db.git widgets --version latest
  miniature load https://github.com/acme/db.git widgets --version ">=0.2.0,<0.3.0" --target vendor/widgets
  miniature load https://github.com/acme/db.git widgets --branch develop --clean`,
	Args: cobra.ExactArgs(2),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().String("version", "", "tag, \"latest\" or a version range")
	loadCmd.Flags().String("branch", "", "branch used when no version is given (default main)")
	loadCmd.Flags().String("target", "", "target directory (default: the package path)")
	loadCmd.Flags().Bool("clean", false, "remove the target directory before copying")
	loadCmd.Flags().Bool("scoped", false, "only consider tags prefixed with the package path")
	loadCmd.Flags().Bool("json", false, "print the result as JSON")
}

func runLoad(cmd *cobra.Command, args []string) error {
	version, _ := cmd.Flags().GetString("version")
	branch, _ := cmd.Flags().GetString("branch")
	target, _ := cmd.Flags().GetString("target")
	clean, _ := cmd.Flags().GetBool("clean")
	scoped, _ := cmd.Flags().GetBool("scoped")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	s, err := newSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := s.engine.Load(context.Background(), core.LoadOptions{
		Repo:      args[0],
		Path:      args[1],
		Version:   version,
		Branch:    branch,
		TargetDir: target,
		Clean:     clean,
		Scope:     scoped,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := printJSON(result); err != nil {
			return err
		}
	} else {
		printStatus(result.Success, result.Message)
	}

	if !result.Success {
		return failure("load failed", result.Err)
	}

	return nil
}

// describeLoad renders one batch entry.
func describeLoad(name string, result *core.LoadResult) string {
	if !result.Success {
		return fmt.Sprintf("%s: %s", name, result.Message)
	}

	return fmt.Sprintf("%s: %s -> %s", name, valueStyle.Render(result.Version), result.TargetDir)
}
