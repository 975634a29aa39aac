package commands

import (
	"tmap/internal/config"
	"tmap/internal/domain"
	"tmap/internal/resolve"
	"tmap/internal/storage"
	"tmap/internal/ui"

	"github.com/spf13/cobra"
)

// ViewCommand handles the view command
type ViewCommand struct {
	config   *config.Config
	resolver *resolve.Resolver
	viewer   *ui.Viewer
	storage  storage.Storage
}

// NewViewCommand creates a new ViewCommand
func NewViewCommand(
	cfg *config.Config,
	resolver *resolve.Resolver,
	viewer *ui.Viewer,
	st storage.Storage,
) *ViewCommand {
	return &ViewCommand{
		config:   cfg,
		resolver: resolver,
		viewer:   viewer,
		storage:  st,
	}
}

// Execute runs the command
func (vc *ViewCommand) Execute(cmd *cobra.Command, args []string) error {
	var snapshot *domain.IndexSnapshot
	var err error

	if vc.config.Flags.FromFile != "" {
		snapshot, err = vc.storage.Load(vc.config.Flags.FromFile)
	} else {
		snapshot, err = vc.resolver.Snapshot()
	}
	if err != nil {
		return err
	}

	return vc.viewer.View(snapshot)
}
