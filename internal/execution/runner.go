package execution

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gotestx/internal/config"
	"gotestx/internal/domain"
	"gotestx/internal/expand"
)

// Runner expands a single testx source file and writes the generated test
// file next to it.
type Runner struct {
	config   *config.Config
	expander *expand.Expander
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, expander *expand.Expander) *Runner {
	return &Runner{config: cfg, expander: expander}
}

// OutputPath returns the generated file path for a testx source file.
func OutputPath(sourcePath string) string {
	return strings.TrimSuffix(sourcePath, ".go") + "_test.go"
}

// Run expands one file. The generated file is written only when expansion
// produced no diagnostics and dry-run is off; a file with diagnostics still
// reports every one of them.
func (r *Runner) Run(sourcePath string, workerID int) domain.FileResult {
	start := time.Now()
	result := domain.FileResult{
		SourcePath: sourcePath,
		OutputPath: OutputPath(sourcePath),
	}

	src, err := os.ReadFile(sourcePath)
	if err != nil {
		result.Err = fmt.Errorf("read %s: %w", sourcePath, err)
		result.Duration = time.Since(start)
		return result
	}

	res, err := r.expander.Source(sourcePath, src)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	result.Marked = res.Marked
	result.Expanded = res.Expanded
	result.Diagnostics = res.Diagnostics

	if res.Output != nil && !r.config.Flags.DryRun {
		if err := os.WriteFile(result.OutputPath, res.Output, 0644); err != nil {
			result.Err = fmt.Errorf("write %s: %w", result.OutputPath, err)
		} else {
			result.Written = true
		}
	}

	result.Duration = time.Since(start)
	return result
}
