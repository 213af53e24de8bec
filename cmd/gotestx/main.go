package main

import (
	"fmt"
	"os"

	"gotestx/internal/cli"
	"gotestx/internal/cli/commands"
	"gotestx/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "gotestx",
		Short:   "Setup-aware test expansion for Go",
		Long:    `A source-rewriting build step for Go tests. Functions marked with a //testx:test directive are expanded into standard tests, with an optional parameter seeded by a sibling setup function.`,
		Version: version,
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
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
