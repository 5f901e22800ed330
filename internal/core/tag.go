package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/inovacc/miniature/internal/git"
	"github.com/inovacc/miniature/internal/model"
)

// TagAction is the last step a tag operation completed.
type TagAction string

const (
	TagCreated     TagAction = "created"
	TagOverwritten TagAction = "overwritten"
	TagPushed      TagAction = "pushed"
)

// TagOptions configures CreateTag.
type TagOptions struct {
	Repo    string
	Name    string
	Message string // default Name
	Force   bool   // replace an existing tag, force-push when pushing
	Push    bool
}

// TagOutcome reports a successful CreateTag.
type TagOutcome struct {
	Success bool      `json:"success"`
	Action  TagAction `json:"action"`
	TagName string    `json:"tag_name"`
	Message string    `json:"message"`
}

// CreateTag creates an annotated tag in the working copy of opts.Repo. An
// existing tag is only replaced when opts.Force is set; otherwise a
// *TagExistsError is returned and nothing is changed.
func (e *Engine) CreateTag(ctx context.Context, opts TagOptions) (*TagOutcome, error) {
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		return nil, &model.ValidationError{Field: "tag"}
	}

	local, err := e.locate(opts.Repo)
	if err != nil {
		return nil, err
	}

	exists, err := e.vcs.TagExists(ctx, local, name)
	if err != nil {
		return nil, fmt.Errorf("check tag %s: %w", name, err)
	}

	action := TagCreated

	if exists {
		if !opts.Force {
			return nil, &TagExistsError{Name: name}
		}

		if err := e.vcs.DeleteTag(ctx, local, name); err != nil {
			return nil, fmt.Errorf("delete tag %s: %w", name, err)
		}

		action = TagOverwritten
	}

	message := opts.Message
	if message == "" {
		message = name
	}

	if err := e.vcs.CreateAnnotatedTag(ctx, local, name, message); err != nil {
		return nil, fmt.Errorf("create tag %s: %w", name, err)
	}

	e.logger.Debug("tag written", "repo", opts.Repo, "tag", name, "action", action)

	if opts.Push {
		if err := e.vcs.PushRef(ctx, local, e.remote, "refs/tags/"+name, opts.Force); err != nil {
			return nil, fmt.Errorf("push tag %s: %w", name, err)
		}

		action = TagPushed
	}

	return &TagOutcome{
		Success: true,
		Action:  action,
		TagName: name,
		Message: fmt.Sprintf("Tag '%s' %s", name, action),
	}, nil
}

// RemovalStatus describes what happened to one side of a tag removal.
type RemovalStatus string

const (
	RemovalDeleted    RemovalStatus = "deleted"
	RemovalAbsent     RemovalStatus = "absent"
	RemovalNotDeleted RemovalStatus = "not-deleted"
	RemovalSkipped    RemovalStatus = "skipped"
)

// RemovalOutcome reports RemoveTag. A missing tag is an outcome, not an
// error.
type RemovalOutcome struct {
	Success       bool          `json:"success"`
	TagName       string        `json:"tag_name"`
	Local         RemovalStatus `json:"local"`
	Remote        RemovalStatus `json:"remote"`
	LocalMessage  string        `json:"local_message"`
	RemoteMessage string        `json:"remote_message,omitempty"`
	Message       string        `json:"message"`
}

// RemoveTag deletes the local tag when present and, if remote is not empty,
// deletes the remote ref. A failed remote deletion is reported in the
// outcome.
func (e *Engine) RemoveTag(ctx context.Context, repo, name, remote string) (*RemovalOutcome, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &model.ValidationError{Field: "tag"}
	}

	local, err := e.locate(repo)
	if err != nil {
		return nil, err
	}

	exists, err := e.vcs.TagExists(ctx, local, name)
	if err != nil {
		return nil, fmt.Errorf("check tag %s: %w", name, err)
	}

	out := &RemovalOutcome{Success: true, TagName: name, Remote: RemovalSkipped}

	if exists {
		if err := e.vcs.DeleteTag(ctx, local, name); err != nil {
			return nil, fmt.Errorf("delete tag %s: %w", name, err)
		}

		out.Local = RemovalDeleted
		out.LocalMessage = fmt.Sprintf("Deleted local tag '%s'", name)
	} else {
		out.Local = RemovalAbsent
		out.LocalMessage = fmt.Sprintf("Local tag '%s' did not exist", name)
	}

	out.Message = out.LocalMessage

	if remote == "" {
		return out, nil
	}

	out.Remote, out.RemoteMessage = e.removeRemoteTag(ctx, local, remote, name)
	out.Message += ", " + out.RemoteMessage

	return out, nil
}

// removeRemoteTag deletes the tag on remote. The remote is asked first
// because git accepts the deletion of a ref the remote does not have.
func (e *Engine) removeRemoteTag(ctx context.Context, local, remote, name string) (RemovalStatus, string) {
	notDeleted := func(err error) (RemovalStatus, string) {
		e.logger.Warn("remote tag deletion failed", "tag", name, "remote", remote, "error", err)
		return RemovalNotDeleted, fmt.Sprintf("Remote tag '%s' could not be deleted from %s: %v", name, remote, err)
	}

	absent := fmt.Sprintf("Remote tag '%s' did not exist on %s", name, remote)

	exists, err := e.vcs.RemoteTagExists(ctx, local, remote, name)
	if err != nil {
		return notDeleted(err)
	}

	if !exists {
		return RemovalAbsent, absent
	}

	err = e.vcs.PushRefDeletion(ctx, local, remote, "refs/tags/"+name)

	switch {
	case err == nil:
		return RemovalDeleted, fmt.Sprintf("Deleted remote tag '%s' from %s", name, remote)
	case git.IsRefNotFound(err):
		return RemovalAbsent, absent
	default:
		return notDeleted(err)
	}
}
