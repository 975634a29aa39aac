package commands

import (
	"fmt"
	"os"

	"tmap/internal/config"
	"tmap/internal/resolve"
	"tmap/internal/storage"
	"tmap/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	resolver  *resolve.Resolver
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	resolver *resolve.Resolver,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		resolver:  resolver,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	// With names, list the test scripts covering them
	if len(args) > 0 {
		scripts, err := lc.resolver.Resolve(args)
		if err != nil {
			return err
		}
		lc.formatter.PrintScripts(scripts)
		return nil
	}

	// Without names, dump the whole index
	lc.resolver.SetProgress(ui.NewScanProgress())
	snapshot, err := lc.resolver.Snapshot()
	if err != nil {
		return err
	}

	if lc.config.Flags.JSON {
		if lc.config.Flags.Output != "" {
			if err := lc.storage.Save(snapshot, lc.config.Flags.Output); err != nil {
				return err
			}
			color.Green("Index written to %s", lc.config.Flags.Output)
			return nil
		}
		return lc.storage.Write(snapshot, os.Stdout)
	}

	lc.formatter.PrintPackageTable(snapshot)
	fmt.Println()
	color.Cyan("%d package(s) mapped", len(snapshot.Packages))
	return nil
}
