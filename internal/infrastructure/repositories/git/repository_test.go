//go:build unit

package git_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitshell/internal/domain/entities"
	domainRepos "github.com/rios0rios0/gitshell/internal/domain/repositories"
	"github.com/rios0rios0/gitshell/internal/infrastructure/repositories/git"
	repoDoubles "github.com/rios0rios0/gitshell/test/domain/repositorydoubles"
	gitDoubles "github.com/rios0rios0/gitshell/test/infrastructure/gitdoubles"
)

const testRemote = "https://example.com/repo.git"

// fakeWorkingCopy creates a directory with a minimal valid .git layout.
func fakeWorkingCopy(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	gitDir := filepath.Join(dir, ".git")
	require.NoError(t, os.MkdirAll(filepath.Join(gitDir, "objects"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(gitDir, "refs", "heads"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(gitDir, "HEAD"), []byte("ref: refs/heads/main\n"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(gitDir, "config"),
		[]byte("[core]\n\trepositoryformatversion = 0\n\tbare = false\n"), 0o644))
	return dir
}

func newRemote(runner git.Runner, creds domainRepos.CredentialsProvider) domainRepos.GitRepository {
	return git.NewFactory(runner, "git").Remote(testRemote, creds)
}

func TestFactoryOpenLocal(t *testing.T) {
	t.Parallel()

	t.Run("should fail when the path does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		factory := git.NewFactory(&gitDoubles.SpyRunner{}, "git")

		// when
		repo, err := factory.OpenLocal(filepath.Join(t.TempDir(), "missing"), nil)

		// then
		require.ErrorIs(t, err, entities.ErrRepositoryLocalPathNotExists)
		assert.Nil(t, repo)
	})

	t.Run("should fail when the path is not a repository root", func(t *testing.T) {
		t.Parallel()

		// given
		factory := git.NewFactory(&gitDoubles.SpyRunner{}, "git")

		// when
		repo, err := factory.OpenLocal(t.TempDir(), nil)

		// then
		require.Error(t, err)
		assert.Nil(t, repo)
	})

	t.Run("should bind to an existing working copy", func(t *testing.T) {
		t.Parallel()

		// given
		factory := git.NewFactory(&gitDoubles.SpyRunner{}, "git")
		workingCopy := fakeWorkingCopy(t)

		// when
		repo, err := factory.OpenLocal(workingCopy, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, workingCopy, repo.LocalPath())
		assert.Empty(t, repo.RemoteURL())
	})
}

func TestRepositoryClone(t *testing.T) {
	t.Parallel()

	t.Run("should reject clone on a local-only instance", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &gitDoubles.SpyRunner{}
		factory := git.NewFactory(runner, "git")
		repo, err := factory.OpenLocal(fakeWorkingCopy(t), nil)
		require.NoError(t, err)

		// when
		cloneErr := repo.Clone(context.Background(), t.TempDir(), entities.CloneOptions{})

		// then
		require.ErrorIs(t, cloneErr, entities.ErrRepositoryNotInitialized)
		assert.Empty(t, runner.Specs())
	})

	t.Run("should clone into an existing empty directory", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &gitDoubles.SpyRunner{
			Lines: []string{"Cloning into 'repo'...", "Receiving objects: 100%", "done."},
		}
		delegate := &repoDoubles.SpyEventDelegate{}
		repo := newRemote(runner, nil)
		repo.SetDelegate(delegate)
		target := t.TempDir()

		// when
		err := repo.Clone(context.Background(), target, entities.CloneOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, target, repo.LocalPath())

		events := delegate.Events()
		require.NotEmpty(t, events)
		assert.Equal(t, "start", events[0])
		assert.Len(t, delegate.StartedArguments(), 1)
		assert.Equal(t, runner.Lines, delegate.ProgressLines())

		specs := runner.Specs()
		require.Len(t, specs, 1)
		assert.Equal(t, "git", specs[0].Path)
		assert.Contains(t, specs[0].Args, testRemote)
		assert.Contains(t, specs[0].Args, target)
	})

	t.Run("should create an absent target including parents", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &gitDoubles.SpyRunner{}
		repo := newRemote(runner, nil)
		target := filepath.Join(t.TempDir(), "nested", "workdir")

		// when
		err := repo.Clone(context.Background(), target, entities.CloneOptions{})

		// then
		require.NoError(t, err)
		info, statErr := os.Stat(target)
		require.NoError(t, statErr)
		assert.True(t, info.IsDir())
		assert.Equal(t, target, repo.LocalPath())
	})

	t.Run("should fail without invoking the tool when the target is not empty", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &gitDoubles.SpyRunner{}
		delegate := &repoDoubles.SpyEventDelegate{}
		repo := newRemote(runner, nil)
		repo.SetDelegate(delegate)

		target := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(target, "leftover"), []byte("x"), 0o644))

		// when
		err := repo.Clone(context.Background(), target, entities.CloneOptions{})

		// then
		require.ErrorIs(t, err, entities.ErrCloneDirectoryNotEmpty)
		assert.Empty(t, runner.Specs())
		assert.Empty(t, delegate.Events())
		assert.Empty(t, repo.LocalPath())
	})

	t.Run("should surface the stderr tail when the tool fails", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &gitDoubles.SpyRunner{
			Result: git.Result{ExitCode: 128, StderrTail: "fatal: repository not found"},
		}
		repo := newRemote(runner, nil)

		// when
		err := repo.Clone(context.Background(), t.TempDir(), entities.CloneOptions{})

		// then
		var cloneErr *entities.CloneError
		require.ErrorAs(t, err, &cloneErr)
		assert.Contains(t, cloneErr.Message, "repository not found")
		assert.False(t, cloneErr.Cancelled)
		assert.False(t, errors.Is(err, entities.ErrOperationCancelled))
		assert.Empty(t, repo.LocalPath())
	})

	t.Run("should embed the credential in the tool arguments but not in notifications", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &gitDoubles.SpyRunner{}
		creds := &repoDoubles.StubCredentialsProvider{
			Cred: entities.Credential{Token: "sekret"},
		}
		delegate := &repoDoubles.SpyEventDelegate{}
		repo := newRemote(runner, creds)
		repo.SetDelegate(delegate)

		// when
		err := repo.Clone(context.Background(), t.TempDir(), entities.CloneOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{testRemote}, creds.RequestedURLs())

		specs := runner.Specs()
		require.Len(t, specs, 1)
		assert.Contains(t, strings.Join(specs[0].Args, " "), "sekret@example.com")

		started := delegate.StartedArguments()
		require.Len(t, started, 1)
		assert.NotContains(t, strings.Join(started[0], " "), "sekret")
	})

	t.Run("should pass clone options through to the argument list", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &gitDoubles.SpyRunner{}
		repo := newRemote(runner, nil)

		// when
		err := repo.Clone(context.Background(), t.TempDir(), entities.CloneOptions{
			Branch:       "develop",
			Depth:        1,
			SingleBranch: true,
		})

		// then
		require.NoError(t, err)
		specs := runner.Specs()
		require.Len(t, specs, 1)
		joined := strings.Join(specs[0].Args, " ")
		assert.Contains(t, joined, "--branch develop")
		assert.Contains(t, joined, "--depth 1")
		assert.Contains(t, joined, "--single-branch")
	})

	t.Run("should survive a panicking delegate", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &gitDoubles.SpyRunner{Lines: []string{"Cloning..."}}
		repo := newRemote(runner, nil)
		repo.SetDelegate(repoDoubles.PanickingDelegate{})
		target := t.TempDir()

		// when
		err := repo.Clone(context.Background(), target, entities.CloneOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, target, repo.LocalPath())
	})
}

func TestRepositoryOperationGuard(t *testing.T) {
	t.Parallel()

	t.Run("should reject a second operation while one is in flight", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &gitDoubles.SpyRunner{
			BlockUntilCancel: true,
			Started:          make(chan struct{}, 1),
		}
		repo := newRemote(runner, nil)

		firstDone := make(chan error, 1)
		go func() {
			firstDone <- repo.Clone(context.Background(), t.TempDir(), entities.CloneOptions{})
		}()
		<-runner.Started

		// when
		secondClone := repo.Clone(context.Background(), t.TempDir(), entities.CloneOptions{})
		_, secondFetch := repo.FetchReferences(context.Background())

		// then
		require.ErrorIs(t, secondClone, entities.ErrActiveOperationInProgress)
		require.ErrorIs(t, secondFetch, entities.ErrActiveOperationInProgress)

		repo.Cancel()
		require.ErrorIs(t, <-firstDone, entities.ErrOperationCancelled)
	})
}

func TestRepositoryCancel(t *testing.T) {
	t.Parallel()

	t.Run("should be a no-op when idle and not affect a later clone", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &gitDoubles.SpyRunner{}
		repo := newRemote(runner, nil)
		repo.Cancel()
		repo.Cancel()
		target := t.TempDir()

		// when
		err := repo.Clone(context.Background(), target, entities.CloneOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, target, repo.LocalPath())
	})

	t.Run("should surface a cancelled clone and release the guard", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &gitDoubles.SpyRunner{
			Lines:            []string{"Receiving objects: 42%"},
			BlockUntilCancel: true,
			Started:          make(chan struct{}, 1),
		}
		delegate := &repoDoubles.SpyEventDelegate{}
		repo := newRemote(runner, nil)
		repo.SetDelegate(delegate)

		done := make(chan error, 1)
		go func() {
			done <- repo.Clone(context.Background(), t.TempDir(), entities.CloneOptions{})
		}()
		<-runner.Started

		// when
		repo.Cancel()
		repo.Cancel() // idempotent
		err := <-done

		// then
		var cloneErr *entities.CloneError
		require.ErrorAs(t, err, &cloneErr)
		assert.True(t, cloneErr.Cancelled)
		require.ErrorIs(t, err, entities.ErrOperationCancelled)
		assert.Empty(t, repo.LocalPath())

		// and a later operation is accepted and can succeed
		runner.BlockUntilCancel = false
		runner.Lines = nil
		target := t.TempDir()
		require.NoError(t, repo.Clone(context.Background(), target, entities.CloneOptions{}))
		assert.Equal(t, target, repo.LocalPath())
	})
}

func TestRepositoryFetchReferences(t *testing.T) {
	t.Parallel()

	t.Run("should reject fetch on a remote-only instance", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &gitDoubles.SpyRunner{}
		repo := newRemote(runner, nil)

		// when
		refs, err := repo.FetchReferences(context.Background())

		// then
		require.ErrorIs(t, err, entities.ErrRepositoryNotInitialized)
		assert.Nil(t, refs)
		assert.Empty(t, runner.Specs())
	})

	t.Run("should fail when the local path vanished", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &gitDoubles.SpyRunner{}
		factory := git.NewFactory(runner, "git")
		workingCopy := fakeWorkingCopy(t)
		repo, err := factory.OpenLocal(workingCopy, nil)
		require.NoError(t, err)
		require.NoError(t, os.RemoveAll(workingCopy))

		// when
		refs, fetchErr := repo.FetchReferences(context.Background())

		// then
		require.ErrorIs(t, fetchErr, entities.ErrRepositoryLocalPathNotExists)
		assert.Nil(t, refs)
		assert.Empty(t, runner.Specs())
	})

	t.Run("should list references in the tool's native order", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &gitDoubles.SpyRunner{
			Lines: []string{
				"51e0d3b5dd0b0c25424bc04cd64e27b2f1a1e88c refs/tags/v1.1.0",
				"2f5c3a9d1f0e6f0b7e1b2c3d4e5f60718293a4b5 refs/heads/main",
				"b1946ac92492d2347c6235b4d2611184a0e3c0e8b1946ac92492d2347c6235b4 refs/heads/develop",
			},
		}
		factory := git.NewFactory(runner, "git")
		workingCopy := fakeWorkingCopy(t)
		repo, err := factory.OpenLocal(workingCopy, nil)
		require.NoError(t, err)

		delegate := &repoDoubles.SpyEventDelegate{}
		repo.SetDelegate(delegate)

		// when
		refs, fetchErr := repo.FetchReferences(context.Background())

		// then
		require.NoError(t, fetchErr)
		require.Len(t, refs, 3)
		assert.Equal(t, "refs/tags/v1.1.0", refs[0].Name)
		assert.Equal(t, "refs/heads/main", refs[1].Name)
		assert.Equal(t, "refs/heads/develop", refs[2].Name)

		// start notification fired exactly once, no progress events
		assert.Equal(t, []string{"start"}, delegate.Events())

		specs := runner.Specs()
		require.Len(t, specs, 1)
		assert.Contains(t, specs[0].Args, "for-each-ref")
		assert.Equal(t, workingCopy, specs[0].Dir)
	})

	t.Run("should succeed after a clone populated the local path", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &gitDoubles.SpyRunner{}
		repo := newRemote(runner, nil)
		target := t.TempDir()
		require.NoError(t, repo.Clone(context.Background(), target, entities.CloneOptions{}))

		runner.Lines = []string{"2f5c3a9d1f0e6f0b7e1b2c3d4e5f60718293a4b5 refs/heads/main"}

		// when
		refs, err := repo.FetchReferences(context.Background())

		// then
		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, "refs/heads/main", refs[0].Name)

		// one clone, one ref listing, no re-clone
		specs := runner.Specs()
		require.Len(t, specs, 2)
		assert.Equal(t, "clone", specs[0].Args[0])
		assert.Equal(t, "for-each-ref", specs[1].Args[0])
	})
}
