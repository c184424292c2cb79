package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitshell/internal/domain/commands"
	"github.com/rios0rios0/gitshell/internal/domain/entities"
)

// RefsController handles the "refs" subcommand.
type RefsController struct {
	command commands.ListRefs
}

// NewRefsController creates a new RefsController.
func NewRefsController(command commands.ListRefs) *RefsController {
	return &RefsController{command: command}
}

// GetBind returns the Cobra command metadata for the refs controller.
func (it *RefsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "refs <path>",
		Short: "List the references of a local repository",
		Long: `List the references (branches, tags, remotes) of an existing local
repository, in the order the underlying git tool reports them.`,
	}
}

// Execute runs the refs subcommand.
func (it *RefsController) Execute(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")

	localPath := "."
	if len(args) > 0 {
		localPath = args[0]
	}

	refs, err := it.command.Execute(context.Background(), commands.RefsOptions{
		LocalPath: localPath,
		Verbose:   verbose,
	})
	if err != nil {
		logger.Errorf("Listing references failed: %v", err)
		return
	}

	for _, ref := range refs {
		logger.Infof("%s %-6s %s", ref.Hash, ref.Kind(), ref.Name)
	}
}
