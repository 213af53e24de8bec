package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gotestx/internal/config"
	"gotestx/internal/discovery"
	"gotestx/internal/storage"
	"gotestx/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	files, err := lc.scanner.Scan(lc.config.GetSourcePath())
	if err != nil {
		return err
	}
	files = lc.filter.FilterByName(files, lc.config.Flags.NameFilter)

	if len(files) == 0 {
		color.Yellow("No testx files found")
		return nil
	}

	// Mark files that failed in the last run, when a report exists
	failedPaths := make(map[string]struct{})
	if report, err := lc.storage.Load(); err == nil {
		for _, d := range report.Details {
			failedPaths[ui.PathKey(lc.config.ProjectPath, d.File)] = struct{}{}
		}
		for _, fe := range report.Errors {
			failedPaths[ui.PathKey(lc.config.ProjectPath, fe.File)] = struct{}{}
		}
	}

	return lc.formatter.PrintFileList(files, lc.config.Flags.TestCases, failedPaths)
}
