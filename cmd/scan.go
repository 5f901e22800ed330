package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/inovacc/miniature/internal/security"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [package-dir]",
	Short: "Scan a package for secrets",
	Long: `Scan a package directory for hardcoded secrets and credentials, the same
check publish runs before pushing.

Uses gitleaks rules to detect:
- API keys, tokens, passwords
- Private keys, certificates
- Cloud provider credentials

Accepted findings can be listed by fingerprint in .gitleaksignore.

Examples:
  miniature scan
  miniature scan ./widgets`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(_ *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	_, _ = fmt.Fprintln(os.Stdout, dimStyle.Render("Scanning "+path+" for secrets..."))

	scanner, err := security.NewLeakScanner()
	if err != nil {
		return fmt.Errorf("failed to initialize scanner: %w", err)
	}

	result, err := scanner.ScanDirectory(context.Background(), path)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if result.HasLeaks {
		_, _ = fmt.Fprint(os.Stdout, security.FormatFindings(result.Findings))
		printStatus(false, fmt.Sprintf("Found %d secret(s)", len(result.Findings)))

		return errors.New("secrets detected")
	}

	printStatus(true, "No secrets detected")

	return nil
}
