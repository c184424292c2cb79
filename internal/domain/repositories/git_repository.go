package repositories

import (
	"context"

	"github.com/rios0rios0/gitshell/internal/domain/entities"
)

// GitRepository is the public contract of a single repository binding. An
// instance is bound either to a remote origin (clone-capable) or to an
// existing working copy (reference-listing capable); a successful clone
// leaves a remote-bound instance additionally bound to its new local path.
//
// At most one operation may be in flight per instance. A second concurrent
// Clone or FetchReferences call is rejected immediately with
// entities.ErrActiveOperationInProgress, never queued.
type GitRepository interface {
	// RemoteURL returns the remote origin URL, or "" for a local-only
	// instance. Immutable after construction.
	RemoteURL() string

	// LocalPath returns the working copy path, or "" until a successful
	// clone populates it.
	LocalPath() string

	// SetDelegate registers the event delegate receiving start/progress
	// notifications. The repository does not own the delegate; passing nil
	// unregisters it.
	SetDelegate(delegate EventDelegate)

	// Clone materializes the remote repository at targetPath. The call
	// blocks until the external tool finishes, fails, or is cancelled.
	Clone(ctx context.Context, targetPath string, options entities.CloneOptions) error

	// FetchReferences lists the references of the local working copy in
	// the tool's native output order.
	FetchReferences(ctx context.Context) ([]entities.Reference, error)

	// Cancel requests termination of the in-flight operation, if any. It
	// only signals and returns immediately; the in-flight call observes
	// the termination and surfaces it through its own error return.
	// Calling Cancel when idle is a no-op; repeated calls are idempotent.
	Cancel()
}

// RepositoryFactory creates repository bindings.
type RepositoryFactory interface {
	// Remote binds a new instance to a remote origin. Never fails.
	Remote(remoteURL string, credentials CredentialsProvider) GitRepository

	// OpenLocal binds a new instance to an existing working copy. It
	// fails when the path does not exist or is not a repository root, so
	// no instance can exist in an invalid state.
	OpenLocal(localPath string, credentials CredentialsProvider) (GitRepository, error)
}
