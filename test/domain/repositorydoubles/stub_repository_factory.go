package repositorydoubles

import (
	"context"
	"sync"

	"github.com/rios0rios0/gitshell/internal/domain/entities"
	"github.com/rios0rios0/gitshell/internal/domain/repositories"
)

// SpyGitRepository implements repositories.GitRepository as a configurable
// spy for command-layer tests.
type SpyGitRepository struct {
	mu sync.Mutex

	Remote string
	Local  string

	CloneErr error
	Refs     []entities.Reference
	FetchErr error

	clonedPaths  []string
	cloneOptions []entities.CloneOptions
	delegate     repositories.EventDelegate
	cancelCount  int
}

func (r *SpyGitRepository) RemoteURL() string { return r.Remote }

func (r *SpyGitRepository) LocalPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Local
}

func (r *SpyGitRepository) SetDelegate(delegate repositories.EventDelegate) {
	r.mu.Lock()
	r.delegate = delegate
	r.mu.Unlock()
}

func (r *SpyGitRepository) Clone(_ context.Context, targetPath string, options entities.CloneOptions) error {
	r.mu.Lock()
	r.clonedPaths = append(r.clonedPaths, targetPath)
	r.cloneOptions = append(r.cloneOptions, options)
	if r.CloneErr == nil {
		r.Local = targetPath
	}
	r.mu.Unlock()
	return r.CloneErr
}

func (r *SpyGitRepository) FetchReferences(_ context.Context) ([]entities.Reference, error) {
	return r.Refs, r.FetchErr
}

func (r *SpyGitRepository) Cancel() {
	r.mu.Lock()
	r.cancelCount++
	r.mu.Unlock()
}

// ClonedPaths returns the target paths of every Clone call.
func (r *SpyGitRepository) ClonedPaths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.clonedPaths...)
}

// CloneOptionsSeen returns the options of every Clone call.
func (r *SpyGitRepository) CloneOptionsSeen() []entities.CloneOptions {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entities.CloneOptions(nil), r.cloneOptions...)
}

// Delegate returns the currently registered delegate.
func (r *SpyGitRepository) Delegate() repositories.EventDelegate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.delegate
}

// StubRepositoryFactory implements repositories.RepositoryFactory, handing
// out a pre-configured repository spy.
type StubRepositoryFactory struct {
	mu sync.Mutex

	Repo    *SpyGitRepository
	OpenErr error

	remoteURLs []string
	openPaths  []string
}

func (f *StubRepositoryFactory) Remote(remoteURL string, _ repositories.CredentialsProvider) repositories.GitRepository {
	f.mu.Lock()
	f.remoteURLs = append(f.remoteURLs, remoteURL)
	f.mu.Unlock()
	f.Repo.Remote = remoteURL
	return f.Repo
}

func (f *StubRepositoryFactory) OpenLocal(localPath string, _ repositories.CredentialsProvider) (repositories.GitRepository, error) {
	f.mu.Lock()
	f.openPaths = append(f.openPaths, localPath)
	f.mu.Unlock()
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	f.Repo.Local = localPath
	return f.Repo, nil
}

// RemoteURLs returns the URLs passed to Remote.
func (f *StubRepositoryFactory) RemoteURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.remoteURLs...)
}

// OpenPaths returns the paths passed to OpenLocal.
func (f *StubRepositoryFactory) OpenPaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.openPaths...)
}
