package cmd

import (
	"fmt"
	"log/slog"

	"github.com/inovacc/miniature/internal/core"
	"github.com/inovacc/miniature/internal/git"
	"github.com/inovacc/miniature/internal/history"
	"github.com/inovacc/miniature/internal/registry"
	"github.com/inovacc/miniature/internal/security"
)

// session bundles what a command needs to run engine operations.
type session struct {
	engine   *core.Engine
	registry *registry.Registry
	history  history.Store
}

func (s *session) Close() {
	if s.history != nil {
		if err := s.history.Close(); err != nil {
			logger.Warn("failed to close history", slog.String("error", err.Error()))
		}
	}
}

// newSession wires the engine from the loaded configuration. scan enables
// the secret scanner used by publish.
func newSession(scan bool) (*session, error) {
	reg, err := registry.Open(cfg.Registry)
	if err != nil {
		return nil, err
	}

	client := git.NewClient()
	if cfg.GitPath != "" {
		client.GitPath = cfg.GitPath
	}

	client.Logger = logger

	if cfg.CredentialHelper {
		client.WithCredentialHelper()
	}

	s := &session{registry: reg}

	opts := core.Options{
		VCS:      client,
		Registry: reg,
		Remote:   cfg.Remote,
		Logger:   logger,
	}

	if cfg.History.Enabled {
		store, err := openHistory()
		if err != nil {
			logger.Warn("load history disabled", slog.String("error", err.Error()))
		} else {
			s.history = store
			opts.Recorder = store
		}
	}

	if scan && cfg.ScanSecrets {
		scanner, err := security.NewLeakScanner()
		if err != nil {
			logger.Warn("secret scan disabled", slog.String("error", err.Error()))
		} else {
			opts.Scanner = scanner
		}
	}

	s.engine = core.New(opts)

	return s, nil
}

func openHistory() (history.Store, error) {
	path, err := cfg.HistoryFile()
	if err != nil {
		return nil, err
	}

	store, err := history.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}

	return store, nil
}
