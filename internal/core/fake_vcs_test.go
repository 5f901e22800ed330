package core

import (
	"context"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/inovacc/miniature/internal/git"
	"github.com/inovacc/miniature/internal/history"
	"github.com/inovacc/miniature/internal/model"
	"github.com/inovacc/miniature/internal/registry"
	"github.com/inovacc/miniature/internal/security"
	"github.com/stretchr/testify/require"
)

type snapshot map[string]string

type pushCall struct {
	Remote string
	Ref    string
	Force  bool
}

// fakeVCS keeps refs as file snapshots. Checkout writes a snapshot into the
// working copy, tags capture the working copy as it is.
type fakeVCS struct {
	Tags        map[string]snapshot
	TagMessages map[string]string
	Branches    map[string]snapshot
	RemoteTags  map[string]bool

	// Error injection, keyed by method name
	Fail map[string]error

	// Call tracking
	Calls      []string
	Pushes     []pushCall
	Deletions  []string
	Commits    []string
	Cloned     []string
	CheckedOut string
}

func newFakeVCS() *fakeVCS {
	return &fakeVCS{
		Tags:        map[string]snapshot{},
		TagMessages: map[string]string{},
		Branches:    map[string]snapshot{"main": {}},
		RemoteTags:  map[string]bool{},
		Fail:        map[string]error{},
	}
}

func (f *fakeVCS) call(name string) error {
	f.Calls = append(f.Calls, name)
	return f.Fail[name]
}

func (f *fakeVCS) called(name string) bool {
	return slices.Contains(f.Calls, name)
}

func gitFailure(cmd, stderr string) error {
	return git.NewGitError([]string{cmd}, stderr, errors.New("exit status 1"))
}

func (f *fakeVCS) ListTags(_ context.Context, _ string) ([]string, error) {
	if err := f.call("ListTags"); err != nil {
		return nil, err
	}

	return slices.Sorted(maps.Keys(f.Tags)), nil
}

func (f *fakeVCS) TagExists(_ context.Context, _, name string) (bool, error) {
	if err := f.call("TagExists"); err != nil {
		return false, err
	}

	_, ok := f.Tags[name]

	return ok, nil
}

func (f *fakeVCS) Checkout(_ context.Context, dir, ref string) error {
	if err := f.call("Checkout"); err != nil {
		return err
	}

	snap, ok := f.Tags[ref]
	if !ok {
		snap, ok = f.Branches[ref]
	}

	if !ok {
		return gitFailure("checkout", "error: pathspec '"+ref+"' did not match any file(s) known to git")
	}

	if err := materialize(dir, snap); err != nil {
		return err
	}

	f.CheckedOut = ref

	return nil
}

func (f *fakeVCS) CreateAnnotatedTag(_ context.Context, dir, name, message string) error {
	if err := f.call("CreateAnnotatedTag"); err != nil {
		return err
	}

	if _, ok := f.Tags[name]; ok {
		return gitFailure("tag", "fatal: tag '"+name+"' already exists")
	}

	snap, err := takeSnapshot(dir)
	if err != nil {
		return err
	}

	f.Tags[name] = snap
	f.TagMessages[name] = message

	return nil
}

func (f *fakeVCS) DeleteTag(_ context.Context, _, name string) error {
	if err := f.call("DeleteTag"); err != nil {
		return err
	}

	if _, ok := f.Tags[name]; !ok {
		return gitFailure("tag", "error: tag '"+name+"' not found.")
	}

	delete(f.Tags, name)
	delete(f.TagMessages, name)

	return nil
}

func (f *fakeVCS) PushRef(_ context.Context, _, remote, ref string, force bool) error {
	if err := f.call("PushRef"); err != nil {
		return err
	}

	f.Pushes = append(f.Pushes, pushCall{Remote: remote, Ref: ref, Force: force})
	f.RemoteTags[strings.TrimPrefix(ref, "refs/tags/")] = true

	return nil
}

func (f *fakeVCS) PushRefDeletion(_ context.Context, _, remote, ref string) error {
	if err := f.call("PushRefDeletion"); err != nil {
		return err
	}

	// like git, deleting a ref the remote lacks succeeds
	delete(f.RemoteTags, strings.TrimPrefix(ref, "refs/tags/"))
	f.Deletions = append(f.Deletions, remote+" "+ref)

	return nil
}

func (f *fakeVCS) RemoteTagExists(_ context.Context, _, _, name string) (bool, error) {
	if err := f.call("RemoteTagExists"); err != nil {
		return false, err
	}

	return f.RemoteTags[name], nil
}

func (f *fakeVCS) Clone(_ context.Context, url, dest string) error {
	if err := f.call("Clone"); err != nil {
		return err
	}

	f.Cloned = append(f.Cloned, url)

	return os.MkdirAll(filepath.Join(dest, ".git"), 0o755)
}

func (f *fakeVCS) CommitAll(_ context.Context, dir, message string, _ ...string) error {
	if err := f.call("CommitAll"); err != nil {
		return err
	}

	snap, err := takeSnapshot(dir)
	if err != nil {
		return err
	}

	if maps.Equal(snap, f.Branches[f.CheckedOut]) {
		return gitFailure("commit", "On branch main\nnothing to commit, working tree clean")
	}

	f.Branches[f.CheckedOut] = snap
	f.Commits = append(f.Commits, message)

	return nil
}

func (f *fakeVCS) PushBranch(_ context.Context, _, remote, branch string) error {
	if err := f.call("PushBranch"); err != nil {
		return err
	}

	f.Pushes = append(f.Pushes, pushCall{Remote: remote, Ref: "refs/heads/" + branch})

	return nil
}

// takeSnapshot reads every file below dir except the .git directory.
func takeSnapshot(dir string) (snapshot, error) {
	snap := snapshot{}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}

			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		snap[filepath.ToSlash(rel)] = string(data)

		return nil
	})

	return snap, err
}

// materialize replaces the content of dir, except .git, with snap.
func materialize(dir string, snap snapshot) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.Name() == ".git" {
			continue
		}

		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}

	for rel, content := range snap {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}

		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return err
		}
	}

	return nil
}

type fakeRecorder struct {
	Entries []history.Entry
	Err     error
}

func (r *fakeRecorder) Record(entry history.Entry) error {
	r.Entries = append(r.Entries, entry)
	return r.Err
}

type fakeScanner struct {
	Result *security.ScanResult
	Err    error
	Dirs   []string
}

func (s *fakeScanner) ScanDirectory(_ context.Context, dir string) (*security.ScanResult, error) {
	s.Dirs = append(s.Dirs, dir)
	return s.Result, s.Err
}

const testRepo = "https://example.com/acme/db.git"

type testEnv struct {
	engine   *Engine
	vcs      *fakeVCS
	registry *registry.Registry
	workdir  string
	root     string
}

// newTestEnv registers testRepo with an empty working copy backed by a
// fake VCS.
func newTestEnv(t *testing.T, opts ...func(*Options)) *testEnv {
	t.Helper()

	root := t.TempDir()
	workdir := filepath.Join(root, "wc")
	require.NoError(t, os.MkdirAll(filepath.Join(workdir, ".git"), 0o755))

	reg, err := registry.Open(filepath.Join(root, ".miniature", "gitdbs.json"))
	require.NoError(t, err)

	reg.Upsert(model.RegistryEntry{Repo: testRepo, LocalPath: workdir})
	require.NoError(t, reg.Save())

	vcs := newFakeVCS()

	o := Options{VCS: vcs, Registry: reg}
	for _, fn := range opts {
		fn(&o)
	}

	return &testEnv{engine: New(o), vcs: vcs, registry: reg, workdir: workdir, root: root}
}

func (e *testEnv) path(parts ...string) string {
	return filepath.Join(append([]string{e.root}, parts...)...)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}
