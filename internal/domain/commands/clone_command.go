package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitshell/internal/domain/entities"
	"github.com/rios0rios0/gitshell/internal/domain/repositories"
	"github.com/rios0rios0/gitshell/internal/infrastructure/repositories/credentials"
)

// Clone is the interface for the clone command.
type Clone interface {
	Execute(ctx context.Context, opts CloneOptions) error
}

// CloneOptions holds runtime options for a single clone.
type CloneOptions struct {
	RemoteURL    string
	TargetPath   string
	Branch       string
	Depth        int
	SingleBranch bool
	Token        string // If set, overrides env-based credential detection
	Verbose      bool
}

// CloneCommand clones a remote repository into a local directory, streaming
// the tool's progress output to the log.
type CloneCommand struct {
	factory repositories.RepositoryFactory
	creds   repositories.CredentialsProvider
}

// NewCloneCommand creates a new CloneCommand.
func NewCloneCommand(
	factory repositories.RepositoryFactory,
	creds repositories.CredentialsProvider,
) *CloneCommand {
	return &CloneCommand{factory: factory, creds: creds}
}

// Execute runs the clone and blocks until it finishes, fails, or is
// cancelled via the context.
func (it *CloneCommand) Execute(ctx context.Context, opts CloneOptions) error {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}
	if opts.RemoteURL == "" || opts.TargetPath == "" {
		return fmt.Errorf("both a remote URL and a target path are required")
	}

	creds := it.creds
	if opts.Token != "" {
		creds = credentials.NewStaticProvider(entities.Credential{Token: opts.Token})
	}

	repo := it.factory.Remote(opts.RemoteURL, creds)
	repo.SetDelegate(&consoleDelegate{})

	// Cancel the in-flight process when the caller's context ends.
	stop := context.AfterFunc(ctx, repo.Cancel)
	defer stop()

	logger.Infof("Cloning %s into %s...", opts.RemoteURL, opts.TargetPath)

	err := repo.Clone(ctx, opts.TargetPath, entities.CloneOptions{
		Branch:       opts.Branch,
		Depth:        opts.Depth,
		SingleBranch: opts.SingleBranch,
	})
	if err != nil {
		return fmt.Errorf("failed to clone %s: %w", opts.RemoteURL, err)
	}

	logger.Infof("Cloned into %s", repo.LocalPath())
	return nil
}

// consoleDelegate forwards repository notifications to the log.
type consoleDelegate struct {
	repositories.NoopDelegate
}

func (d *consoleDelegate) WillStartTask(arguments []string) {
	logger.Debugf("Running git %v", arguments)
}

func (d *consoleDelegate) DidProgressClone(line string) {
	logger.Info(line)
}
