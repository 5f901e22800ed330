package core

import (
	"context"
	"fmt"

	"github.com/inovacc/miniature/internal/model"
)

// BatchOptions configures LoadAll.
type BatchOptions struct {
	ManifestPath string
	Names        []string // nil loads every entry
	Clean        bool
}

// BatchResult aggregates per-package load results.
type BatchResult struct {
	Success   bool                   `json:"success"`
	Succeeded int                    `json:"succeeded"`
	Total     int                    `json:"total"`
	Results   map[string]*LoadResult `json:"results"`
	Order     []string               `json:"order"`
	Message   string                 `json:"message"`
}

// LoadAll loads the selected manifest entries one after the other. A failing
// entry is recorded and never stops the rest.
func (e *Engine) LoadAll(ctx context.Context, opts BatchOptions) (*BatchResult, error) {
	manifest, err := LoadManifest(opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	names := opts.Names
	if names == nil {
		names = manifest.Names()
	}

	batch := &BatchResult{Results: make(map[string]*LoadResult, len(names))}

	for _, name := range names {
		if _, seen := batch.Results[name]; seen {
			continue
		}

		var result *LoadResult

		entry, ok := manifest.Packages[name]

		switch {
		case !ok:
			result = &LoadResult{Message: fmt.Sprintf("Package '%s' not found in manifest", name)}
		case entry.Repo == "":
			result = &LoadResult{Path: entry.RootDir, Message: fmt.Sprintf("No 'db-repo' found for package '%s'", name)}
		default:
			result = e.loadEntry(ctx, entry, opts.Clean)
		}

		if result.Success {
			batch.Succeeded++
		} else {
			e.logger.Warn("package failed", "name", name, "message", result.Message)
		}

		batch.Results[name] = result
		batch.Order = append(batch.Order, name)
	}

	batch.Total = len(batch.Order)
	batch.Success = batch.Succeeded == batch.Total
	batch.Message = fmt.Sprintf("Loaded %d/%d packages", batch.Succeeded, batch.Total)

	if !batch.Success {
		batch.Message += " (some failed)"
	}

	return batch, nil
}

func (e *Engine) loadEntry(ctx context.Context, entry model.ManifestEntry, clean bool) *LoadResult {
	result, err := e.Load(ctx, LoadOptions{
		Repo:      entry.Repo,
		Path:      entry.RootDir,
		Version:   entry.Version,
		Branch:    entry.Branch,
		TargetDir: entry.Target(),
		Clean:     clean,
	})
	if err != nil {
		requested := entry.Version
		if requested == "" {
			requested = entry.Branch
		}

		return &LoadResult{
			Repo:      entry.Repo,
			Path:      entry.RootDir,
			Version:   requested,
			TargetDir: entry.Target(),
			Message:   fmt.Sprintf("Failed to load package: %v", err),
			Err:       err,
		}
	}

	return result
}
