//go:build unit

package credentials_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitshell/internal/infrastructure/repositories/credentials"
)

// No t.Parallel here: these tests mutate the process environment.
func TestEnvProviderCredential(t *testing.T) {
	provider := credentials.NewEnvProvider()

	t.Run("should resolve a GitHub token from GITHUB_TOKEN", func(t *testing.T) {
		// given
		t.Setenv("GITHUB_TOKEN", "gh-token")

		// when
		cred, err := provider.Credential(context.Background(), "https://github.com/org/repo.git")

		// then
		require.NoError(t, err)
		assert.Equal(t, "gh-token", cred.Token)
	})

	t.Run("should fall back to GH_TOKEN", func(t *testing.T) {
		// given
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("GH_TOKEN", "gh-fallback")

		// when
		cred, err := provider.Credential(context.Background(), "https://github.com/org/repo.git")

		// then
		require.NoError(t, err)
		assert.Equal(t, "gh-fallback", cred.Token)
	})

	t.Run("should resolve a GitLab token for scp-style remotes", func(t *testing.T) {
		// given
		t.Setenv("GITLAB_TOKEN", "gl-token")

		// when
		cred, err := provider.Credential(context.Background(), "git@gitlab.com:org/repo.git")

		// then
		require.NoError(t, err)
		assert.Equal(t, "gl-token", cred.Token)
	})

	t.Run("should use GIT_TOKEN for unknown hosts", func(t *testing.T) {
		// given
		t.Setenv("GIT_TOKEN", "generic-token")

		// when
		cred, err := provider.Credential(context.Background(), "https://git.example.com/repo.git")

		// then
		require.NoError(t, err)
		assert.Equal(t, "generic-token", cred.Token)
	})

	t.Run("should yield an anonymous credential when nothing is set", func(t *testing.T) {
		// given
		t.Setenv("GIT_TOKEN", "")

		// when
		cred, err := provider.Credential(context.Background(), "https://git.example.com/repo.git")

		// then
		require.NoError(t, err)
		assert.True(t, cred.IsZero())
	})
}
