package main

import (
	"errors"
	"fmt"
	"os"

	"tmap/internal/cli"
	"tmap/internal/cli/commands"
	"tmap/internal/config"
	"tmap/internal/execution"
	"tmap/internal/logging"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Load .env from the working directory and honor the debug toggle
	config.LoadEnv()
	if config.Debug() {
		logging.EnableDebug()
	}

	// Create root command
	rootCmd := &cobra.Command{
		Use:           "tmap",
		Short:         "Map source files and packages to their test scripts",
		Long:          `tmap maps source files, package names, and directories to the test scripts that exercise them, then invokes the project's test runner restricted to that set. Edit a file, run only the tests that cover it.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		// Propagate the external runner's exit code as our own
		var exitErr *execution.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
