package commands

import (
	"bufio"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gotestx/internal/config"
	"gotestx/internal/discovery"
	"gotestx/internal/expand"
)

// CleanCommand handles the clean command
type CleanCommand struct {
	config  *config.Config
	scanner *discovery.Scanner
}

// NewCleanCommand creates a new CleanCommand
func NewCleanCommand(cfg *config.Config, scanner *discovery.Scanner) *CleanCommand {
	return &CleanCommand{config: cfg, scanner: scanner}
}

// Execute runs the command
func (cc *CleanCommand) Execute(cmd *cobra.Command, args []string) error {
	files, err := cc.scanner.Scan(cc.config.GetSourcePath())
	if err != nil {
		return err
	}

	var removed int
	for _, file := range files {
		generated, err := isGenerated(file)
		if err != nil {
			color.Red("✗ %s: %v", file, err)
			continue
		}
		if !generated {
			// Hand-written file that happens to match the suffix; leave it.
			color.Yellow("skipping %s: missing generated-code header", file)
			continue
		}
		if err := os.Remove(file); err != nil {
			color.Red("✗ %s: %v", file, err)
			continue
		}
		removed++
	}

	color.Green("Removed %d generated test file(s)", removed)
	return nil
}

// isGenerated checks the first line of a file for the generated-code header.
func isGenerated(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	return strings.TrimSpace(scanner.Text()) == expand.Header, nil
}
