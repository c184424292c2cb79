package entities

import (
	"errors"
	"fmt"
)

// Operation failures surfaced by a repository. They are mutually exclusive
// and always returned synchronously to the caller of the failing operation.
var (
	// ErrActiveOperationInProgress is returned when a second operation is
	// attempted while one is in flight on the same instance. Operations
	// are rejected, never queued.
	ErrActiveOperationInProgress = errors.New("another operation is already in progress")

	// ErrRepositoryNotInitialized is returned when an operation requires a
	// binding the instance does not have: a remote URL for clone, a local
	// path for reference listing.
	ErrRepositoryNotInitialized = errors.New("repository is not initialized for this operation")

	// ErrRepositoryLocalPathNotExists is returned when the bound local
	// path no longer exists on disk.
	ErrRepositoryLocalPathNotExists = errors.New("local repository path does not exist")

	// ErrCloneDirectoryNotEmpty is returned when the clone target exists
	// and is not an empty directory.
	ErrCloneDirectoryNotEmpty = errors.New("clone target directory is not empty")

	// ErrOperationCancelled matches (via errors.Is) a CloneError caused by
	// a caller-requested cancellation rather than a tool failure.
	ErrOperationCancelled = errors.New("operation cancelled")
)

// CloneError reports an external tool invocation that did not complete
// successfully. Message carries the captured diagnostic output (stderr tail
// or last progress line). Cancelled distinguishes a caller-requested
// termination from an organic tool failure.
type CloneError struct {
	Message   string
	Cancelled bool
}

func (e *CloneError) Error() string {
	if e.Cancelled {
		return fmt.Sprintf("clone cancelled: %s", e.Message)
	}
	return fmt.Sprintf("clone failed: %s", e.Message)
}

// Is makes errors.Is(err, ErrOperationCancelled) true for cancelled runs.
func (e *CloneError) Is(target error) bool {
	return target == ErrOperationCancelled && e.Cancelled
}
