package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitshell/internal/domain/entities"
	"github.com/rios0rios0/gitshell/internal/domain/repositories"
)

// ListRefs is the interface for the refs command.
type ListRefs interface {
	Execute(ctx context.Context, opts RefsOptions) ([]entities.Reference, error)
}

// RefsOptions holds runtime options for a reference listing.
type RefsOptions struct {
	LocalPath string
	Verbose   bool
}

// RefsCommand lists the references of an existing working copy.
type RefsCommand struct {
	factory repositories.RepositoryFactory
	creds   repositories.CredentialsProvider
}

// NewRefsCommand creates a new RefsCommand.
func NewRefsCommand(
	factory repositories.RepositoryFactory,
	creds repositories.CredentialsProvider,
) *RefsCommand {
	return &RefsCommand{factory: factory, creds: creds}
}

// Execute opens the working copy and returns its references in the tool's
// native output order.
func (it *RefsCommand) Execute(ctx context.Context, opts RefsOptions) ([]entities.Reference, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}
	if opts.LocalPath == "" {
		return nil, fmt.Errorf("a repository path is required")
	}

	repo, err := it.factory.OpenLocal(opts.LocalPath, it.creds)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	stop := context.AfterFunc(ctx, repo.Cancel)
	defer stop()

	refs, fetchErr := repo.FetchReferences(ctx)
	if fetchErr != nil {
		return nil, fmt.Errorf("failed to list references: %w", fetchErr)
	}

	logger.Debugf("Found %d references in %s", len(refs), opts.LocalPath)
	return refs, nil
}
