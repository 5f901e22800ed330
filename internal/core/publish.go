package core

import (
	"context"
	"fmt"
	"path/filepath"
)

// PublishOptions configures Publish.
type PublishOptions struct {
	PackageDir    string
	MetaFile      string // default "pkg.json"
	CommitMessage string
	Push          bool
	Tag           bool
	ForceTag      bool
	SkipScan      bool // bypass the secret scan
}

// PublishOutcome reports a publish. When tagging fails after a successful
// commit step, Success is false and TagErr is set while the commit fields
// keep what was achieved.
type PublishOutcome struct {
	Success       bool        `json:"success"`
	RepoPath      string      `json:"repo_path,omitempty"`
	CommitMessage string      `json:"commit_message,omitempty"`
	Committed     bool        `json:"committed"`
	Pushed        bool        `json:"pushed"`
	Tag           *TagOutcome `json:"tag,omitempty"`
	TagName       string      `json:"tag_name,omitempty"`
	Message       string      `json:"message"`
	Err           error       `json:"-"`
	TagErr        error       `json:"-"`
}

// Publish commits the package directory into its repository and tags the
// result with the version from its metadata file.
func (e *Engine) Publish(ctx context.Context, opts PublishOptions) (*PublishOutcome, error) {
	meta, err := ReadMetadata(opts.PackageDir, opts.MetaFile)
	if err != nil {
		return nil, err
	}

	if e.scanner != nil && !opts.SkipScan {
		if err := e.scan(ctx, opts.PackageDir); err != nil {
			return nil, err
		}
	}

	pushed, err := e.Push(ctx, PushOptions{
		PackageDir:    opts.PackageDir,
		MetaFile:      opts.MetaFile,
		CommitMessage: opts.CommitMessage,
		Push:          opts.Push,
	})
	if err != nil {
		return nil, err
	}

	out := &PublishOutcome{
		Success:       pushed.Success,
		RepoPath:      pushed.RepoPath,
		CommitMessage: pushed.CommitMessage,
		Committed:     pushed.Committed,
		Pushed:        pushed.Pushed,
		Message:       pushed.Message,
		Err:           pushed.Err,
	}

	if !pushed.Success || !opts.Tag {
		return out, nil
	}

	out.TagName = meta.TagName()

	tag, err := e.CreateTag(ctx, TagOptions{
		Repo:    meta.Repo,
		Name:    out.TagName,
		Message: "Release " + out.TagName,
		Force:   opts.ForceTag,
		Push:    opts.Push,
	})
	if err != nil {
		out.Success = false
		out.TagErr = err
		out.Message = fmt.Sprintf("Push successful but tagging failed: %v", err)

		return out, nil
	}

	out.Tag = tag
	out.Message = pushed.Message + ", " + tag.Message

	return out, nil
}

// PublishFromFile publishes the package whose metadata file is metaPath.
func (e *Engine) PublishFromFile(ctx context.Context, metaPath string, opts PublishOptions) (*PublishOutcome, error) {
	opts.PackageDir = filepath.Dir(metaPath)
	opts.MetaFile = filepath.Base(metaPath)

	return e.Publish(ctx, opts)
}

func (e *Engine) scan(ctx context.Context, dir string) error {
	result, err := e.scanner.ScanDirectory(ctx, dir)
	if err != nil {
		e.logger.Warn("secret scan failed, continuing", "dir", dir, "error", err)
		return nil
	}

	if result.HasLeaks {
		return &SecretsFoundError{Dir: dir, Result: result}
	}

	return nil
}
