package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags <db-repo>",
	Short: "List the tags of a registered repository",
	Long: `List the tags of a registered repository in version order.
Tags without a parseable version are listed separately; they can only be
loaded by exact name.`,
	Args: cobra.ExactArgs(1),
	RunE: runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

func runTags(_ *cobra.Command, args []string) error {
	s, err := newSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	versioned, raw, err := s.engine.Tags(context.Background(), args[0])
	if err != nil {
		return err
	}

	if len(versioned) == 0 && len(raw) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, dimStyle.Render("No tags found"))
		return nil
	}

	names := make([]string, 0, len(versioned))
	for _, t := range versioned {
		names = append(names, t.Name)
	}

	width := columnWidth(names, 10, 50)

	_, _ = fmt.Fprintln(os.Stdout, headerStyle.Render(padRight("TAG", width)+"  VERSION"))

	for _, t := range versioned {
		_, _ = fmt.Fprintf(os.Stdout, "%s  %s\n",
			padRight(truncateString(t.Name, width), width),
			valueStyle.Render(t.Version.String()))
	}

	if len(raw) > 0 {
		_, _ = fmt.Fprintln(os.Stdout)
		_, _ = fmt.Fprintln(os.Stdout, headerStyle.Render("UNVERSIONED"))

		for _, name := range raw {
			_, _ = fmt.Fprintln(os.Stdout, dimStyle.Render(name))
		}
	}

	return nil
}
