package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/inovacc/miniature/internal/core"
	"github.com/spf13/cobra"
)

var loadAllCmd = &cobra.Command{
	Use:   "load-all <manifest> [name...]",
	Short: "Load the packages listed in a manifest",
	Long: `Load several packages declared in a manifest file:

  {
      "packages": {
          "widgets": {
              "db-repo": "https://github.com/acme/db.git",
              "root-dir": "widgets",
              "version": "latest",
              "target-dir": "vendor/widgets"
          }
      }
  }

Without names every package is loaded, in name order. A failing package
does not stop the others; the command fails if any package failed.

Examples:
  miniature load-all packages.json
  miniature load-all packages.json widgets gadgets --clean`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLoadAll,
}

func init() {
	rootCmd.AddCommand(loadAllCmd)
	loadAllCmd.Flags().Bool("clean", false, "remove each target directory before copying")
	loadAllCmd.Flags().Bool("json", false, "print the result as JSON")
}

func runLoadAll(cmd *cobra.Command, args []string) error {
	clean, _ := cmd.Flags().GetBool("clean")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	var names []string
	if len(args) > 1 {
		names = args[1:]
	}

	s, err := newSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	batch, err := s.engine.LoadAll(context.Background(), core.BatchOptions{
		ManifestPath: args[0],
		Names:        names,
		Clean:        clean,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := printJSON(batch); err != nil {
			return err
		}
	} else {
		for _, name := range batch.Order {
			result := batch.Results[name]
			printStatus(result.Success, describeLoad(name, result))
		}

		_, _ = fmt.Fprintln(os.Stdout)
		_, _ = fmt.Fprintln(os.Stdout, headerStyle.Render(batch.Message))
	}

	if !batch.Success {
		return errors.New("some packages failed to load")
	}

	return nil
}
