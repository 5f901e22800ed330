package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/miniature/internal/config"
	"github.com/inovacc/miniature/internal/git"
	"golang.org/x/term"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// printStatus prints message marked as success or failure.
func printStatus(ok bool, message string) {
	if ok {
		_, _ = fmt.Fprintln(os.Stdout, successStyle.Render("✓ ")+message)
		return
	}

	_, _ = fmt.Fprintln(os.Stdout, failureStyle.Render("✗ ")+message)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// promptConfirm asks the user for confirmation and returns true if they confirm.
// Without a terminal on stdin it returns false.
func promptConfirm(prompt string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}

	_, _ = fmt.Fprint(os.Stdout, prompt)

	var response string

	_, _ = fmt.Scanln(&response)

	return response == "y" || response == "Y"
}

// padRight pads s with spaces to width
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return s + strings.Repeat(" ", width-len(s))
}

// truncateString truncates a string to the specified length with ellipsis
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}

// columnWidth returns the widest value, at least minWidth and at most maxWidth.
func columnWidth(values []string, minWidth, maxWidth int) int {
	width := minWidth
	for _, v := range values {
		if len(v) > width {
			width = len(v)
		}
	}

	return min(width, maxWidth)
}

// errorHint suggests a fix for git failures users can act on.
func errorHint(err error) string {
	switch {
	case git.IsAuthRequired(err):
		return "set GITHUB_TOKEN or enable credential_helper in " + config.DefaultFile
	case git.IsNotRepository(err):
		return "the registered working copy is not a git repository; run setup again"
	case git.IsAlreadyExists(err):
		return "use --force to overwrite an existing tag"
	}

	return ""
}

// failure builds the command error for an unsuccessful outcome, keeping
// cause for errorHint.
func failure(what string, cause error) error {
	if cause == nil {
		return errors.New(what)
	}

	return fmt.Errorf("%s: %w", what, cause)
}
