package commands

import (
	"gotestx/internal/cli"
	"gotestx/internal/config"
	"gotestx/internal/discovery"
	"gotestx/internal/execution"
	"gotestx/internal/expand"
	"gotestx/internal/parser"
	"gotestx/internal/storage"
	"gotestx/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Expand *ExpandCommand
	Check  *CheckCommand
	List   *ListCommand
	Diags  *DiagsCommand
	Clean  *CleanCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner(cfg.PathsToIgnore, discovery.SourceSuffix)
	generatedScanner := discovery.NewScanner(cfg.PathsToIgnore, discovery.GeneratedSuffix)
	filter := discovery.NewFilter()
	expander := expand.New()
	runner := execution.NewRunner(cfg, expander)
	scheduler := execution.NewRoundRobinScheduler()
	pool := execution.NewWorkerPool(cfg, runner, scheduler)
	jsonStorage := storage.NewJSONStorage(cfg)
	lister := parser.NewLister()
	formatter := ui.NewFormatter(cfg, lister)
	viewer := ui.NewDiagViewer(cfg, jsonStorage)

	return &Commands{
		Expand: NewExpandCommand(cfg, scanner, filter, pool, jsonStorage, formatter, viewer),
		Check:  NewCheckCommand(cfg, scanner, filter, pool),
		List:   NewListCommand(cfg, scanner, filter, formatter, jsonStorage),
		Diags:  NewDiagsCommand(cfg, jsonStorage, viewer),
		Clean:  NewCleanCommand(cfg, generatedScanner),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		cfg.Flags = flags.ToConfigFlags()
		if flags.Workers > 0 {
			cfg.Workers = flags.Workers
		}
		return nil
	}

	// Expand command
	expandCmd := &cobra.Command{
		Use:     "expand",
		Short:   "Expand testx files into test files",
		Long:    "Discover testx source files and rewrite each marked function into a standard test, seeding parameters from setup functions",
		RunE:    c.Expand.Execute,
		PreRunE: applyFlags,
	}
	expandCmd.Flags().IntVarP(&flags.Workers, "workers", "w", 4, "Number of parallel expansion workers")
	expandCmd.Flags().StringVarP(&flags.SourcePath, "source-path", "s", "", "Path to the folder where testx file discovery should start")
	expandCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter testx files by name pattern (supports wildcards, e.g. '*store_testx.go' or '*order*')")
	expandCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on the first file that fails to expand")
	expandCmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Expand without writing generated files")
	expandCmd.Flags().BoolVar(&flags.OpenDiags, "open-diags", false, "Open the diagnostics viewer when the run finishes with diagnostics")
	rootCmd.AddCommand(expandCmd)

	// Check command
	checkCmd := &cobra.Command{
		Use:     "check",
		Short:   "Validate testx files without writing anything",
		Long:    "Run the expansion pipeline in memory and report diagnostics; exits nonzero when any file fails",
		RunE:    c.Check.Execute,
		PreRunE: applyFlags,
	}
	checkCmd.Flags().IntVarP(&flags.Workers, "workers", "w", 4, "Number of parallel expansion workers")
	checkCmd.Flags().StringVarP(&flags.SourcePath, "source-path", "s", "", "Path to the folder where testx file discovery should start")
	checkCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter testx files by name pattern")
	rootCmd.AddCommand(checkCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered testx files",
		Long:    "Scan and list all testx files without expanding them",
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter testx files by name pattern")
	listCmd.Flags().StringVarP(&flags.SourcePath, "source-path", "s", "", "Path to the folder where testx file discovery should start")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List marked functions instead of testx files")
	rootCmd.AddCommand(listCmd)

	// Diags command
	diagsCmd := &cobra.Command{
		Use:   "diags",
		Short: "View expansion diagnostics interactively",
		Long:  "Display diagnostics from the last expansion run in an interactive viewer",
		RunE:  c.Diags.Execute,
	}
	rootCmd.AddCommand(diagsCmd)

	// Clean command
	cleanCmd := &cobra.Command{
		Use:     "clean",
		Short:   "Remove generated test files",
		Long:    "Delete previously generated test files, identified by the generated-code header",
		RunE:    c.Clean.Execute,
		PreRunE: applyFlags,
	}
	cleanCmd.Flags().StringVarP(&flags.SourcePath, "source-path", "s", "", "Path to the folder where cleanup should start")
	rootCmd.AddCommand(cleanCmd)
}
