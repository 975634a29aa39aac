package commands

import (
	"os"

	"tmap/internal/config"
	"tmap/internal/execution"
	"tmap/internal/resolve"
	"tmap/internal/ui"

	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	resolver  *resolve.Resolver
	runner    *execution.Runner
	formatter *ui.Formatter
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	resolver *resolve.Resolver,
	runner *execution.Runner,
	formatter *ui.Formatter,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		resolver:  resolver,
		runner:    runner,
		formatter: formatter,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	rc.resolver.SetProgress(ui.NewScanProgress())

	scripts, err := rc.resolver.Resolve(args)
	if err != nil {
		return err
	}

	if rc.config.Flags.DryRun {
		rc.runner.PrintCommand(os.Stdout, scripts)
		return nil
	}

	rc.formatter.PrintRunHeader(scripts)
	return rc.runner.Run(scripts)
}
