package git

import (
	"errors"
	"os/exec"
	"strings"
)

// Common error messages from git
const (
	errMsgNotRepository    = "not a git repository"
	errMsgAuthFailed       = "Authentication failed"
	errMsgPermissionDenied = "Permission denied"
	errMsgRefNotFound      = "couldn't find remote ref"
	errMsgRemoteRefMissing = "remote ref does not exist"
	errMsgPathspec         = "did not match any file(s) known to git"
	errMsgAlreadyExists    = "already exists"
	errMsgNothingToCommit  = "nothing to commit"
	errMsgNothingAdded     = "no changes added to commit"
)

// IsNotRepository checks if the error indicates not a git repository
func IsNotRepository(err error) bool {
	return containsError(err, errMsgNotRepository)
}

// IsAuthRequired checks if the error indicates authentication is required
func IsAuthRequired(err error) bool {
	return containsError(err, errMsgAuthFailed) || containsError(err, errMsgPermissionDenied)
}

// IsRefNotFound checks if the error indicates a ref was not found, locally
// (checkout of an unknown tag) or on a remote
func IsRefNotFound(err error) bool {
	return containsError(err, errMsgRefNotFound) ||
		containsError(err, errMsgRemoteRefMissing) ||
		containsError(err, errMsgPathspec)
}

// IsAlreadyExists checks if the error indicates something already exists
func IsAlreadyExists(err error) bool {
	return containsError(err, errMsgAlreadyExists)
}

// IsNothingToCommit checks if the error indicates nothing to commit
func IsNothingToCommit(err error) bool {
	return containsError(err, errMsgNothingToCommit) || containsError(err, errMsgNothingAdded)
}

// containsError checks if the error contains a specific message
func containsError(err error, msg string) bool {
	if err == nil {
		return false
	}

	var gitErr *GitError
	if errors.As(err, &gitErr) {
		return strings.Contains(strings.ToLower(gitErr.Stderr), strings.ToLower(msg))
	}

	return strings.Contains(strings.ToLower(err.Error()), strings.ToLower(msg))
}

// GetExitCode returns the exit code from a git error, or -1 if not available
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	var gitErr *GitError
	if errors.As(err, &gitErr) {
		return gitErr.ExitCode
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return -1
}
