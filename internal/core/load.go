package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inovacc/miniature/internal/encoding"
	"github.com/inovacc/miniature/internal/history"
	"github.com/inovacc/miniature/internal/model"
	"github.com/inovacc/miniature/internal/version"
)

// LoadOptions configures a single package load.
type LoadOptions struct {
	Repo      string // registered repository identifier
	Path      string // subpath inside the repository
	Version   string // exact tag, "latest" or a range; empty selects Branch
	Branch    string // default "main"
	TargetDir string // default Path
	Clean     bool   // remove TargetDir before copying

	// Scope limits latest and range resolution to tags prefixed by Path.
	Scope bool
}

// LoadResult is the outcome of a load. Version holds the tag or branch
// actually checked out, or the request when the load failed.
type LoadResult struct {
	Success   bool   `json:"success"`
	TargetDir string `json:"target_dir,omitempty"`
	Repo      string `json:"db_repo"`
	Path      string `json:"path"`
	Version   string `json:"version"`
	Message   string `json:"message"`
	Err       error  `json:"-"`
}

// Load checks out the resolved version of opts.Repo and copies opts.Path into
// the target directory. Validation and locator failures are returned as
// errors; anything failing afterwards is reported in the result.
func (e *Engine) Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	opts.Repo = strings.TrimSpace(opts.Repo)
	opts.Path = strings.TrimSpace(opts.Path)

	if opts.Path == "" {
		return nil, &model.ValidationError{Field: "path"}
	}

	if !filepath.IsLocal(filepath.FromSlash(opts.Path)) {
		return nil, &model.ValidationError{Field: "path", Reason: "must stay inside the repository"}
	}

	local, err := e.locate(opts.Repo)
	if err != nil {
		return nil, err
	}

	if opts.Branch == "" {
		opts.Branch = model.DefaultBranch
	}

	if opts.TargetDir == "" {
		opts.TargetDir = filepath.FromSlash(opts.Path)
	}

	req := version.ParseRequest(opts.Version, opts.Branch)
	if opts.Scope {
		req = req.WithScope(opts.Path)
	}

	result := &LoadResult{
		TargetDir: opts.TargetDir,
		Repo:      opts.Repo,
		Path:      opts.Path,
		Version:   req.String(),
	}

	ref, err := e.load(ctx, local, req, opts)
	if err != nil {
		result.Err = err
		result.Message = fmt.Sprintf("Failed to load package: %v", err)
		e.logger.Debug("load failed", "repo", opts.Repo, "path", opts.Path, "request", req.String(), "error", err)
	} else {
		result.Success = true
		result.Version = ref
		result.Message = fmt.Sprintf("Loaded %s at %s into %s", opts.Path, ref, opts.TargetDir)
		e.logger.Info("package loaded", "repo", opts.Repo, "path", opts.Path, "version", ref, "target", opts.TargetDir)
	}

	e.record(result, req.String())

	return result, nil
}

// load runs the mutating steps and returns the ref that was checked out.
func (e *Engine) load(ctx context.Context, local string, req version.Request, opts LoadOptions) (string, error) {
	if opts.Clean && encoding.FileExists(opts.TargetDir) {
		if err := os.RemoveAll(opts.TargetDir); err != nil {
			return "", fmt.Errorf("clean target: %w", err)
		}
	}

	if err := encoding.EnsureParentDir(opts.TargetDir); err != nil {
		return "", fmt.Errorf("create target parent: %w", err)
	}

	ref, err := e.resolve(ctx, local, req)
	if err != nil {
		return "", err
	}

	e.logger.Debug("checking out", "dir", local, "ref", ref)

	if err := e.vcs.Checkout(ctx, local, ref); err != nil {
		return "", fmt.Errorf("checkout %s: %w", ref, err)
	}

	source := filepath.Join(local, filepath.FromSlash(opts.Path))
	if _, err := os.Stat(source); err != nil {
		return "", &PathNotFoundError{Path: opts.Path, Version: ref}
	}

	if err := copyPath(source, opts.TargetDir); err != nil {
		return "", fmt.Errorf("copy %s: %w", opts.Path, err)
	}

	return ref, nil
}

// resolve turns req into a concrete ref. Branch and exact requests never
// consult the tag list.
func (e *Engine) resolve(ctx context.Context, local string, req version.Request) (string, error) {
	if req.Kind == version.KindBranch || req.Kind == version.KindExact {
		return req.Value, nil
	}

	tags, err := e.vcs.ListTags(ctx, local)
	if err != nil {
		return "", fmt.Errorf("list tags: %w", err)
	}

	return version.Resolve(tags, req)
}

// ResolveVersion resolves a version request against repo's tags without
// checking anything out. scope, when set, limits candidates to that prefix.
func (e *Engine) ResolveVersion(ctx context.Context, repo, request, scope string) (string, error) {
	local, err := e.locate(repo)
	if err != nil {
		return "", err
	}

	req := version.ParseRequest(request, model.DefaultBranch)
	if scope != "" {
		req = req.WithScope(scope)
	}

	return e.resolve(ctx, local, req)
}

// Tags returns repo's tags ordered by version, followed by the tags that
// carry no parseable version.
func (e *Engine) Tags(ctx context.Context, repo string) ([]version.Tag, []string, error) {
	local, err := e.locate(repo)
	if err != nil {
		return nil, nil, err
	}

	names, err := e.vcs.ListTags(ctx, local)
	if err != nil {
		return nil, nil, fmt.Errorf("list tags: %w", err)
	}

	versioned, raw := version.Sort(names)

	return versioned, raw, nil
}

func (e *Engine) record(result *LoadResult, requested string) {
	if e.recorder == nil {
		return
	}

	entry := history.Entry{
		Repo:      result.Repo,
		Path:      result.Path,
		Requested: requested,
		TargetDir: result.TargetDir,
		Success:   result.Success,
		LoadedAt:  time.Now().UTC(),
	}

	if result.Success {
		entry.Resolved = result.Version
	}

	if result.Err != nil {
		entry.Error = result.Err.Error()
	}

	if err := e.recorder.Record(entry); err != nil {
		e.logger.Warn("failed to record load history", "repo", result.Repo, "error", err)
	}
}
