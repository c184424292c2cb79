package git

import (
	"context"
	"fmt"
	"os"
	"sync"

	gogit "github.com/go-git/go-git/v5"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitshell/internal/domain/entities"
	domainRepos "github.com/rios0rios0/gitshell/internal/domain/repositories"
)

const defaultGitPath = "git"

// Factory creates repository bindings sharing one runner and git binary
// path. It implements domain repositories.RepositoryFactory.
type Factory struct {
	runner  Runner
	gitPath string
}

// NewFactory creates a factory. A nil runner defaults to the exec runner,
// an empty gitPath to "git" resolved via PATH.
func NewFactory(runner Runner, gitPath string) *Factory {
	if runner == nil {
		runner = NewExecRunner()
	}
	if gitPath == "" {
		gitPath = defaultGitPath
	}
	return &Factory{runner: runner, gitPath: gitPath}
}

// Remote binds a new repository instance to a remote origin. Never fails;
// the binding is validated when an operation runs.
func (f *Factory) Remote(remoteURL string, credentials domainRepos.CredentialsProvider) domainRepos.GitRepository {
	return f.newRepository(remoteURL, "", credentials)
}

// OpenLocal binds a new repository instance to an existing working copy. The
// path must exist and be a valid repository root; otherwise no instance is
// returned, so none can exist in an invalid state.
func (f *Factory) OpenLocal(localPath string, credentials domainRepos.CredentialsProvider) (domainRepos.GitRepository, error) {
	info, err := os.Stat(localPath)
	if err != nil {
		return nil, fmt.Errorf("local path %q: %w", localPath, entities.ErrRepositoryLocalPathNotExists)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("local path %q is not a directory", localPath)
	}
	if _, openErr := gogit.PlainOpen(localPath); openErr != nil {
		return nil, fmt.Errorf("local path %q is not a repository root: %w", localPath, openErr)
	}
	return f.newRepository("", localPath, credentials), nil
}

func (f *Factory) newRepository(remoteURL, localPath string, credentials domainRepos.CredentialsProvider) *Repository {
	return &Repository{
		remoteURL: remoteURL,
		localPath: localPath,
		creds:     credentials,
		runner:    f.runner,
		gitPath:   f.gitPath,
	}
}

// NewRemoteRepository binds a repository to a remote origin using the
// default exec runner.
func NewRemoteRepository(remoteURL string, credentials domainRepos.CredentialsProvider) domainRepos.GitRepository {
	return NewFactory(nil, "").Remote(remoteURL, credentials)
}

// OpenLocalRepository binds a repository to an existing working copy using
// the default exec runner.
func OpenLocalRepository(localPath string, credentials domainRepos.CredentialsProvider) (domainRepos.GitRepository, error) {
	return NewFactory(nil, "").OpenLocal(localPath, credentials)
}

// Repository is a stateful binding to one remote origin or working copy. It
// wraps the external git binary behind a synchronous API with progress
// notifications and cooperative cancellation. At most one operation runs per
// instance; a concurrent second call is rejected, never queued.
//
// The instance is not reusable across unrelated remotes: switching remotes
// requires a new instance.
type Repository struct {
	remoteURL string // immutable after construction
	creds     domainRepos.CredentialsProvider
	runner    Runner
	gitPath   string

	guard OperationGuard

	mu        sync.Mutex // protects localPath, delegate, cancelOp
	localPath string     // written only by a completing clone, guard held
	delegate  domainRepos.EventDelegate
	cancelOp  context.CancelFunc
}

// RemoteURL returns the remote origin URL, or "" for a local-only instance.
func (r *Repository) RemoteURL() string {
	return r.remoteURL
}

// LocalPath returns the working copy path, or "" until a successful clone.
func (r *Repository) LocalPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.localPath
}

// SetDelegate registers the event delegate. The repository does not own the
// delegate; nil unregisters it.
func (r *Repository) SetDelegate(delegate domainRepos.EventDelegate) {
	r.mu.Lock()
	r.delegate = delegate
	r.mu.Unlock()
}

// Clone materializes the remote repository at targetPath. The target is
// created (including parents) when absent and must otherwise be an empty
// directory. The call blocks until the tool exits; each output line is
// forwarded to the delegate as it arrives. On success the instance gains
// targetPath as its local path.
func (r *Repository) Clone(ctx context.Context, targetPath string, options entities.CloneOptions) error {
	// Guard first: a busy instance reports the in-flight operation even
	// when other preconditions would fail too.
	if !r.guard.TryAcquire() {
		rejectedOperationsTotal.Inc()
		return entities.ErrActiveOperationInProgress
	}
	defer r.guard.Release()

	if r.remoteURL == "" {
		return entities.ErrRepositoryNotInitialized
	}

	if err := ensureCloneTarget(targetPath); err != nil {
		return err
	}

	cred := r.resolveCredential(ctx)
	spec := Spec{
		Path: r.gitPath,
		Args: cloneArgs(r.remoteURL, targetPath, options, cred),
	}

	result, err := r.runOperation(ctx, spec, func(line string) {
		r.notifyProgress(line)
	})
	if err != nil {
		return &entities.CloneError{Message: err.Error()}
	}
	if result.ExitCode != 0 {
		if result.Cancelled {
			return &entities.CloneError{Message: cancelMessage(result), Cancelled: true}
		}
		return &entities.CloneError{Message: failureMessage(result)}
	}

	r.mu.Lock()
	r.localPath = targetPath
	r.mu.Unlock()

	logger.Infof("cloned %s into %s", r.remoteURL, targetPath)
	return nil
}

// FetchReferences lists the references of the working copy in the tool's
// native output order. The local path must still exist on disk at call time.
func (r *Repository) FetchReferences(ctx context.Context) ([]entities.Reference, error) {
	if !r.guard.TryAcquire() {
		rejectedOperationsTotal.Inc()
		return nil, entities.ErrActiveOperationInProgress
	}
	defer r.guard.Release()

	localPath := r.LocalPath()
	if localPath == "" {
		return nil, entities.ErrRepositoryNotInitialized
	}
	if _, err := os.Stat(localPath); err != nil {
		return nil, entities.ErrRepositoryLocalPathNotExists
	}

	var refs []entities.Reference
	spec := Spec{Path: r.gitPath, Args: fetchReferencesArgs(), Dir: localPath}

	result, err := r.runOperation(ctx, spec, func(line string) {
		if ref, ok := parseReferenceLine(line); ok {
			refs = append(refs, ref)
		}
	})
	if err != nil {
		return nil, &entities.CloneError{Message: err.Error()}
	}
	if result.ExitCode != 0 {
		if result.Cancelled {
			return nil, &entities.CloneError{Message: cancelMessage(result), Cancelled: true}
		}
		return nil, &entities.CloneError{Message: failureMessage(result)}
	}

	return refs, nil
}

// Cancel requests termination of the in-flight operation. It only signals:
// the in-flight call observes the termination and reports it through its own
// error return. No-op when idle, idempotent when repeated.
func (r *Repository) Cancel() {
	r.mu.Lock()
	cancel := r.cancelOp
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// runOperation wires the cancellation hook, fires the start notification and
// drives the runner to completion on the calling goroutine.
func (r *Repository) runOperation(ctx context.Context, spec Spec, sink LineSink) (Result, error) {
	opCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.mu.Lock()
	r.cancelOp = cancel
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.cancelOp = nil
		r.mu.Unlock()
	}()

	r.notifyWillStart(redactArgs(spec.Args))

	return r.runner.Run(opCtx, spec, sink)
}

// resolveCredential asks the provider for auth material. A missing or
// failing provider degrades to anonymous access; the tool reports the auth
// failure, if any, through its own exit status.
func (r *Repository) resolveCredential(ctx context.Context) entities.Credential {
	if r.creds == nil {
		return entities.Credential{}
	}
	cred, err := r.creds.Credential(ctx, r.remoteURL)
	if err != nil {
		logger.Warnf("credentials provider failed for %s: %v", r.remoteURL, err)
		return entities.Credential{}
	}
	return cred
}

func (r *Repository) currentDelegate() domainRepos.EventDelegate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.delegate
}

func (r *Repository) notifyWillStart(arguments []string) {
	delegate := r.currentDelegate()
	if delegate == nil {
		return
	}
	defer recoverDelegatePanic("WillStartTask")
	delegate.WillStartTask(arguments)
}

func (r *Repository) notifyProgress(line string) {
	delegate := r.currentDelegate()
	if delegate == nil {
		return
	}
	defer recoverDelegatePanic("DidProgressClone")
	delegate.DidProgressClone(line)
}

// recoverDelegatePanic keeps a misbehaving delegate from aborting the
// operation; progress delivery is best-effort.
func recoverDelegatePanic(notification string) {
	if rec := recover(); rec != nil {
		logger.Warnf("event delegate panicked in %s: %v", notification, rec)
	}
}

// ensureCloneTarget creates the target path (including parents) when absent
// and verifies an existing one is an empty directory.
func ensureCloneTarget(targetPath string) error {
	info, err := os.Stat(targetPath)
	switch {
	case os.IsNotExist(err):
		if mkErr := os.MkdirAll(targetPath, 0o755); mkErr != nil {
			return fmt.Errorf("create clone target: %w", mkErr)
		}
		return nil
	case err != nil:
		return fmt.Errorf("stat clone target: %w", err)
	case !info.IsDir():
		return entities.ErrCloneDirectoryNotEmpty
	}

	entries, err := os.ReadDir(targetPath)
	if err != nil {
		return fmt.Errorf("read clone target: %w", err)
	}
	if len(entries) > 0 {
		return entities.ErrCloneDirectoryNotEmpty
	}
	return nil
}

func cancelMessage(result Result) string {
	if result.StderrTail != "" {
		return result.StderrTail
	}
	return "terminated on caller request"
}

func failureMessage(result Result) string {
	if result.StderrTail != "" {
		return result.StderrTail
	}
	return fmt.Sprintf("external tool exited with status %d", result.ExitCode)
}
