package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/gitshell/config"
	domainRepos "github.com/rios0rios0/gitshell/internal/domain/repositories"
	"github.com/rios0rios0/gitshell/internal/infrastructure/repositories/credentials"
	"github.com/rios0rios0/gitshell/internal/infrastructure/repositories/git"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Configuration comes from the first config file found, or defaults.
	if err := container.Provide(config.LoadDefault); err != nil {
		return err
	}

	if err := container.Provide(func() git.Runner {
		return git.NewExecRunner()
	}); err != nil {
		return err
	}

	if err := container.Provide(func(cfg *config.Config, runner git.Runner) *git.Factory {
		return git.NewFactory(runner, cfg.Git.BinPath)
	}); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *git.Factory) domainRepos.RepositoryFactory {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.CredentialsProvider {
		return credentials.NewEnvProvider()
	}); err != nil {
		return err
	}

	return nil
}
