package commands

import (
	"github.com/spf13/cobra"

	"gotestx/internal/config"
	"gotestx/internal/storage"
	"gotestx/internal/ui"
)

// DiagsCommand handles the diags command
type DiagsCommand struct {
	config  *config.Config
	storage storage.Storage
	viewer  ui.Viewer
}

// NewDiagsCommand creates a new DiagsCommand
func NewDiagsCommand(cfg *config.Config, st storage.Storage, viewer ui.Viewer) *DiagsCommand {
	return &DiagsCommand{
		config:  cfg,
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (dc *DiagsCommand) Execute(cmd *cobra.Command, args []string) error {
	report, err := dc.storage.Load()
	if err != nil {
		return err
	}

	return dc.viewer.View(report)
}
