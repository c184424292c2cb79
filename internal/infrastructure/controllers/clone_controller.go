package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitshell/config"
	"github.com/rios0rios0/gitshell/internal/domain/commands"
	"github.com/rios0rios0/gitshell/internal/domain/entities"
)

// CloneController handles the "clone" subcommand.
type CloneController struct {
	command commands.Clone
	cfg     *config.Config
}

// NewCloneController creates a new CloneController.
func NewCloneController(command commands.Clone, cfg *config.Config) *CloneController {
	return &CloneController{command: command, cfg: cfg}
}

// GetBind returns the Cobra command metadata for the clone controller.
func (it *CloneController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "clone <remote-url> <target-path>",
		Short: "Clone a remote repository into a local directory",
		Long: `Clone a remote Git repository into a local directory.
The target directory is created if absent and must otherwise be empty.
Progress output from the underlying git process is streamed to the log.`,
	}
}

// AddFlags registers the clone-specific flags.
func (it *CloneController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("branch", "b", "", "Branch to check out instead of the remote default")
	cmd.Flags().Int("depth", 0, "Create a shallow clone truncated to the given number of commits")
	cmd.Flags().Bool("single-branch", false, "Clone only a single branch")
}

// Execute runs the clone subcommand.
func (it *CloneController) Execute(cmd *cobra.Command, args []string) {
	if len(args) < 2 {
		logger.Error("Usage: gitshell clone <remote-url> <target-path>")
		return
	}

	branch, _ := cmd.Flags().GetString("branch")
	depth, _ := cmd.Flags().GetInt("depth")
	singleBranch, _ := cmd.Flags().GetBool("single-branch")
	token, _ := cmd.Flags().GetString("token")
	verbose, _ := cmd.Flags().GetBool("verbose")

	// Config supplies defaults for options left unset on the command line.
	if branch == "" {
		branch = it.cfg.Clone.Branch
	}
	if depth == 0 {
		depth = it.cfg.Clone.Depth
	}
	if !singleBranch {
		singleBranch = it.cfg.Clone.SingleBranch
	}

	if err := it.command.Execute(context.Background(), commands.CloneOptions{
		RemoteURL:    args[0],
		TargetPath:   args[1],
		Branch:       branch,
		Depth:        depth,
		SingleBranch: singleBranch,
		Token:        token,
		Verbose:      verbose,
	}); err != nil {
		logger.Errorf("Clone failed: %v", err)
	}
}
