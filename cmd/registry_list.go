package cmd

import (
	"fmt"
	"os"

	"github.com/inovacc/miniature/internal/registry"
	"github.com/spf13/cobra"
)

var registryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List registered repositories",
	Args:    cobra.NoArgs,
	RunE:    runRegistryList,
}

func init() {
	registryCmd.AddCommand(registryListCmd)
	registryListCmd.Flags().Bool("json", false, "print the registry as JSON")
}

func runRegistryList(cmd *cobra.Command, _ []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	reg, err := registry.Open(cfg.Registry)
	if err != nil {
		return err
	}

	entries := reg.Entries()

	if jsonOutput {
		return printJSON(entries)
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, dimStyle.Render("No repositories registered in "+reg.Path()))
		return nil
	}

	repos := make([]string, 0, len(entries))
	for _, e := range entries {
		repos = append(repos, e.Repo)
	}

	width := columnWidth(repos, 10, 60)

	_, _ = fmt.Fprintln(os.Stdout, headerStyle.Render(padRight("REPOSITORY", width)+"  LOCAL PATH"))

	for _, e := range entries {
		_, _ = fmt.Fprintf(os.Stdout, "%s  %s\n",
			padRight(truncateString(e.Repo, width), width),
			valueStyle.Render(e.LocalPath))

		if e.Description != "" {
			_, _ = fmt.Fprintln(os.Stdout, dimStyle.Render("  "+e.Description))
		}
	}

	return nil
}
