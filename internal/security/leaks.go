// Package security scans package directories for secrets before they are
// published.
package security

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zricethezav/gitleaks/v8/detect"
	"github.com/zricethezav/gitleaks/v8/report"
	"github.com/zricethezav/gitleaks/v8/sources"
)

// IgnoreFile lists fingerprints of accepted findings, relative to the
// scanned directory.
const IgnoreFile = ".gitleaksignore"

// LeakScanner provides secret detection with the default gitleaks rules.
type LeakScanner struct{}

// ScanResult contains the results of a leak scan
type ScanResult struct {
	Findings    []Finding
	HasLeaks    bool
	ScannedPath string
}

// Finding represents a detected secret
type Finding struct {
	RuleID      string
	Description string
	File        string
	Line        int
	Secret      string // Redacted
}

// NewLeakScanner creates a leak scanner and checks that the default gitleaks
// configuration loads.
func NewLeakScanner() (*LeakScanner, error) {
	if _, err := newDetector(); err != nil {
		return nil, err
	}

	return &LeakScanner{}, nil
}

func newDetector() (*detect.Detector, error) {
	detector, err := detect.NewDetectorDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load gitleaks config: %w", err)
	}

	return detector, nil
}

// ScanDirectory scans the files under path. A .gitleaksignore at the top of
// path is honoured.
func (s *LeakScanner) ScanDirectory(ctx context.Context, path string) (*ScanResult, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	detector, err := newDetector()
	if err != nil {
		return nil, err
	}

	detector.Redact = 80 // Redact 80% of the secret

	ignorePath := filepath.Join(absPath, IgnoreFile)
	if _, err := os.Stat(ignorePath); err == nil {
		if err := detector.AddGitleaksIgnore(ignorePath); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", ignorePath, err)
		}
	}

	source := &sources.Files{
		Path:   absPath,
		Config: &detector.Config,
		Sema:   detector.Sema,
	}

	findings, err := detector.DetectSource(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	return buildResult(findings, absPath), nil
}

func buildResult(findings []report.Finding, path string) *ScanResult {
	result := &ScanResult{
		ScannedPath: path,
		HasLeaks:    len(findings) > 0,
		Findings:    make([]Finding, 0, len(findings)),
	}

	for _, f := range findings {
		file := f.File
		if rel, err := filepath.Rel(path, f.File); err == nil && filepath.IsLocal(rel) {
			file = rel
		}

		result.Findings = append(result.Findings, Finding{
			RuleID:      f.RuleID,
			Description: f.Description,
			File:        file,
			Line:        f.StartLine,
			Secret:      f.Secret, // Already redacted by detector
		})
	}

	return result
}

// FormatFindings formats findings for display
func FormatFindings(findings []Finding) string {
	if len(findings) == 0 {
		return ""
	}

	var sb strings.Builder

	_, _ = fmt.Fprintf(&sb, "\nFound %d potential secret(s):\n\n", len(findings))

	for i, f := range findings {
		_, _ = fmt.Fprintf(&sb, "  %d. %s\n", i+1, f.Description)
		_, _ = fmt.Fprintf(&sb, "     Rule: %s\n", f.RuleID)
		_, _ = fmt.Fprintf(&sb, "     File: %s:%d\n", f.File, f.Line)
		_, _ = fmt.Fprintf(&sb, "     Secret: %s\n\n", f.Secret)
	}

	return sb.String()
}
