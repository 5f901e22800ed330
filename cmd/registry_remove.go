package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var registryRemoveCmd = &cobra.Command{
	Use:     "remove <db-repo>",
	Aliases: []string{"rm"},
	Short:   "Forget a registered repository",
	Long: `Remove a repository from the registry. The working copy stays on disk.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runRegistryRemove,
}

func init() {
	registryCmd.AddCommand(registryRemoveCmd)
	registryRemoveCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
}

func runRegistryRemove(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")

	if !yes && !promptConfirm(fmt.Sprintf("Forget %s? [y/N]: ", args[0])) {
		_, _ = fmt.Fprintln(os.Stdout, dimStyle.Render("Cancelled"))
		return nil
	}

	s, err := newSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	removed, err := s.engine.Forget(args[0])
	if err != nil {
		return err
	}

	if !removed {
		printStatus(false, fmt.Sprintf("%s is not registered", args[0]))
		return nil
	}

	printStatus(true, fmt.Sprintf("Removed %s from the registry", args[0]))

	return nil
}
