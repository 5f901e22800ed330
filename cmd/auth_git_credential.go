package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/inovacc/miniature/internal/auth"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:    "auth",
	Short:  "Authentication commands",
	Hidden: true, // Internal commands
}

var gitCredentialCmd = &cobra.Command{
	Use:    "git-credential",
	Short:  "Git credential helper (internal use)",
	Long:   `This command is used as a git credential helper. It is called by git automatically.`,
	Hidden: true,
	Args:   cobra.MaximumNArgs(1),
	RunE:   runGitCredential,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(gitCredentialCmd)
}

func runGitCredential(_ *cobra.Command, args []string) error {
	// Only "get" is supported; store and erase are ignored
	operation := "get"
	if len(args) > 0 {
		operation = args[0]
	}

	if operation != "get" {
		return nil
	}

	return answerCredential(os.Stdin, os.Stdout, auth.TokenForHost)
}

// answerCredential reads a git credential request and writes a token for
// https hosts. Nothing is written when no token is known, so git falls back
// to its other helpers.
func answerCredential(r io.Reader, w io.Writer, lookup func(host string) string) error {
	wants := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}

		if key, value, ok := strings.Cut(line, "="); ok {
			wants[key] = value
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	if wants["protocol"] != "https" {
		return nil
	}

	host := wants["host"]
	if host == "" {
		return nil
	}

	token := lookup(host)
	if token == "" {
		return nil
	}

	_, _ = fmt.Fprintf(w, "protocol=https\n")
	_, _ = fmt.Fprintf(w, "host=%s\n", host)
	_, _ = fmt.Fprintf(w, "username=%s\n", "x-access-token")
	_, _ = fmt.Fprintf(w, "password=%s\n", token)

	return nil
}
