package commands

import (
	"tmap/internal/cli"
	"tmap/internal/config"
	"tmap/internal/execution"
	"tmap/internal/resolve"
	"tmap/internal/storage"
	"tmap/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run  *RunCommand
	List *ListCommand
	View *ViewCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies; the resolver owns the per-invocation index
	resolver := resolve.New(cfg)
	runner := execution.NewRunner(cfg)
	formatter := ui.NewFormatter(cfg)
	jsonStorage := storage.NewJSONStorage()
	viewer := ui.NewViewer(cfg)

	return &Commands{
		Run:  NewRunCommand(cfg, resolver, runner, formatter),
		List: NewListCommand(cfg, resolver, formatter, jsonStorage),
		View: NewViewCommand(cfg, resolver, viewer, jsonStorage),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run <name>...",
		Short: "Run the test scripts covering the given names",
		Long:  "Resolve source files, package names, directories, and test scripts to the set of test scripts covering them, then invoke the test runner restricted to that set",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	runCmd.Flags().BoolVarP(&flags.DryRun, "dry-run", "n", false, "Print the test command instead of running it")
	runCmd.Flags().StringVar(&flags.Root, "root", "", "Project root (default: discovered by walking upward from the current directory)")
	runCmd.Flags().StringVar(&flags.Runner, "runner", "", "Test runner executable (default \"make\")")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list [name]...",
		Short: "List resolved test scripts or the full package mapping",
		Long:  "With names, print the test scripts covering them. Without names, print every package-to-test-script mapping discovered in the project",
		Args:  cobra.ArbitraryArgs,
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	listCmd.Flags().BoolVar(&flags.JSON, "json", false, "Emit the cross-reference index as JSON")
	listCmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Write the JSON export to a file instead of stdout")
	listCmd.Flags().StringVar(&flags.Root, "root", "", "Project root (default: discovered by walking upward from the current directory)")
	rootCmd.AddCommand(listCmd)

	// View command
	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Browse package mappings interactively",
		Long:  "Display the package-to-test-script mappings in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.View.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	viewCmd.Flags().StringVar(&flags.Root, "root", "", "Project root (default: discovered by walking upward from the current directory)")
	viewCmd.Flags().StringVar(&flags.FromFile, "from-file", "", "Load a previously exported JSON snapshot instead of scanning")
	rootCmd.AddCommand(viewCmd)
}
