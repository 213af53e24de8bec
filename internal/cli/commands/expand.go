package commands

import (
	"fmt"

	"gotestx/internal/config"
	"gotestx/internal/discovery"
	"gotestx/internal/execution"
	"gotestx/internal/storage"
	"gotestx/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ExpandCommand handles the expand command
type ExpandCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	pool      *execution.WorkerPool
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer
}

// NewExpandCommand creates a new ExpandCommand
func NewExpandCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	pool *execution.WorkerPool,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *ExpandCommand {
	return &ExpandCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		pool:      pool,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (ec *ExpandCommand) Execute(cmd *cobra.Command, args []string) error {
	// Discover testx files
	files, err := ec.scanner.Scan(ec.config.GetSourcePath())
	if err != nil {
		return err
	}
	files = ec.filter.FilterByName(files, ec.config.Flags.NameFilter)

	if len(files) == 0 {
		color.Yellow("No testx files to expand")
		return nil
	}

	// Create and set progress bar
	progressBar := ui.NewProgressBar(len(files))
	ec.pool.SetProgress(progressBar)

	// Expand files
	results, duration, err := ec.pool.ExecuteWithOptions(files, ec.config.Flags.FailFast)
	if err != nil {
		return err
	}

	// Save the run report
	if err := ec.storage.Save(results, duration, ec.config.Workers); err != nil {
		return fmt.Errorf("failed to save run report: %w", err)
	}

	report, err := ec.storage.Load()
	if err != nil {
		return err
	}
	ec.formatter.PrintRunStats(report)

	if ec.config.Flags.OpenDiags && len(report.Details) > 0 {
		return ec.viewer.View(report)
	}
	return nil
}
