package core

import (
	"context"
	"log/slog"

	"github.com/inovacc/miniature/internal/history"
	"github.com/inovacc/miniature/internal/model"
	"github.com/inovacc/miniature/internal/security"
)

// DefaultRemote is the remote tags and branches are pushed to.
const DefaultRemote = "origin"

// DefaultMetaFile is the package metadata file name.
const DefaultMetaFile = "pkg.json"

// VCS is the version-control surface the engine depends on.
// *git.Client implements it.
type VCS interface {
	ListTags(ctx context.Context, dir string) ([]string, error)
	TagExists(ctx context.Context, dir, name string) (bool, error)
	Checkout(ctx context.Context, dir, ref string) error
	CreateAnnotatedTag(ctx context.Context, dir, name, message string) error
	DeleteTag(ctx context.Context, dir, name string) error
	PushRef(ctx context.Context, dir, remote, ref string, force bool) error
	PushRefDeletion(ctx context.Context, dir, remote, ref string) error
	RemoteTagExists(ctx context.Context, dir, remote, name string) (bool, error)
	Clone(ctx context.Context, url, dest string) error
	CommitAll(ctx context.Context, dir, message string, paths ...string) error
	PushBranch(ctx context.Context, dir, remote, branch string) error
}

// Registry maps repository identifiers to working copies.
// *registry.Registry implements it.
type Registry interface {
	ResolveLocalPath(repo string) (string, error)
	Upsert(entry model.RegistryEntry)
	Remove(repo string) bool
	Save() error
	Path() string
}

// Recorder receives the provenance of every load attempt.
type Recorder interface {
	Record(entry history.Entry) error
}

// Scanner inspects a package directory for secrets before it is published.
type Scanner interface {
	ScanDirectory(ctx context.Context, dir string) (*security.ScanResult, error)
}

// Options configures an Engine.
type Options struct {
	VCS      VCS
	Registry Registry
	Remote   string // default "origin"
	Logger   *slog.Logger
	Recorder Recorder // optional
	Scanner  Scanner  // optional, used by Publish
}

// Engine runs package operations against registered working copies.
type Engine struct {
	vcs      VCS
	registry Registry
	remote   string
	logger   *slog.Logger
	recorder Recorder
	scanner  Scanner
}

// New creates an Engine from opts.
func New(opts Options) *Engine {
	remote := opts.Remote
	if remote == "" {
		remote = DefaultRemote
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		vcs:      opts.VCS,
		registry: opts.Registry,
		remote:   remote,
		logger:   logger,
		recorder: opts.Recorder,
		scanner:  opts.Scanner,
	}
}

// Remote returns the remote name the engine pushes to.
func (e *Engine) Remote() string {
	return e.remote
}

// locate resolves repo to its working copy.
func (e *Engine) locate(repo string) (string, error) {
	if repo == "" {
		return "", &model.ValidationError{Field: "db-repo"}
	}

	return e.registry.ResolveLocalPath(repo)
}
