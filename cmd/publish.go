package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/inovacc/miniature/internal/core"
	"github.com/inovacc/miniature/internal/security"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish [package-dir | metadata-file]",
	Short: "Push a package and tag its version",
	Long: `Scan a package for secrets, push it to its database repository and
tag the commit with the package version. The tag is {root-dir}/{version}
from the metadata file, or just {version} when root-dir is empty.

Publishing is refused when secrets are found; use --skip-scan to bypass
the scan or list accepted findings in .gitleaksignore.

Examples:
  miniature publish
  miniature publish ./widgets/pkg.json
  miniature publish ./widgets --force-tag -m "Widgets 1.2.0"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().String("meta", "", "metadata file name (default from config)")
	publishCmd.Flags().StringP("message", "m", "", "commit message")
	publishCmd.Flags().Bool("no-push", false, "commit and tag without pushing")
	publishCmd.Flags().Bool("no-tag", false, "skip tagging")
	publishCmd.Flags().Bool("force-tag", false, "overwrite an existing tag")
	publishCmd.Flags().Bool("skip-scan", false, "skip secret scanning")
	publishCmd.Flags().Bool("json", false, "print the result as JSON")
}

func runPublish(cmd *cobra.Command, args []string) error {
	meta, _ := cmd.Flags().GetString("meta")
	message, _ := cmd.Flags().GetString("message")
	noPush, _ := cmd.Flags().GetBool("no-push")
	noTag, _ := cmd.Flags().GetBool("no-tag")
	forceTag, _ := cmd.Flags().GetBool("force-tag")
	skipScan, _ := cmd.Flags().GetBool("skip-scan")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	if meta == "" {
		meta = cfg.MetaFile
	}

	s, err := newSession(!skipScan)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := core.PublishOptions{
		PackageDir:    target,
		MetaFile:      meta,
		CommitMessage: message,
		Push:          !noPush,
		Tag:           !noTag,
		ForceTag:      forceTag,
		SkipScan:      skipScan,
	}

	ctx := context.Background()

	var out *core.PublishOutcome

	if info, statErr := os.Stat(target); statErr == nil && !info.IsDir() {
		out, err = s.engine.PublishFromFile(ctx, target, opts)
	} else {
		out, err = s.engine.Publish(ctx, opts)
	}

	if err != nil {
		var secrets *core.SecretsFoundError
		if errors.As(err, &secrets) {
			_, _ = fmt.Fprint(os.Stdout, security.FormatFindings(secrets.Result.Findings))
		}

		return err
	}

	if jsonOutput {
		if err := printJSON(out); err != nil {
			return err
		}
	} else {
		printStatus(out.Success, out.Message)
	}

	if !out.Success {
		return failure("publish failed", errors.Join(out.Err, out.TagErr))
	}

	return nil
}
