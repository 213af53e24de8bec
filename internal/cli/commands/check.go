package commands

import (
	"fmt"

	"gotestx/internal/config"
	"gotestx/internal/discovery"
	"gotestx/internal/execution"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// CheckCommand handles the check command
type CheckCommand struct {
	config  *config.Config
	scanner *discovery.Scanner
	filter  *discovery.Filter
	pool    *execution.WorkerPool
}

// NewCheckCommand creates a new CheckCommand
func NewCheckCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	pool *execution.WorkerPool,
) *CheckCommand {
	return &CheckCommand{
		config:  cfg,
		scanner: scanner,
		filter:  filter,
		pool:    pool,
	}
}

// Execute runs the command
func (cc *CheckCommand) Execute(cmd *cobra.Command, args []string) error {
	files, err := cc.scanner.Scan(cc.config.GetSourcePath())
	if err != nil {
		return err
	}
	files = cc.filter.FilterByName(files, cc.config.Flags.NameFilter)

	if len(files) == 0 {
		color.Yellow("No testx files to check")
		return nil
	}

	// Never write generated files in check mode
	cc.config.Flags.DryRun = true

	results, _, err := cc.pool.Execute(files)
	if err != nil {
		return err
	}

	var failed int
	for _, result := range results {
		if result.Err != nil {
			failed++
			color.Red("✗ %s: %v", result.SourcePath, result.Err)
			continue
		}
		for _, d := range result.Diagnostics {
			color.Red("✗ %s: %s: %s", d.Position(), d.Kind, d.Message)
		}
		if !result.Clean() {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d testx file(s) failed to expand", failed, len(results))
	}
	color.Green("✓ %d testx file(s) expand cleanly", len(results))
	return nil
}
