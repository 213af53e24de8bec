package ui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"gotestx/internal/config"
	"gotestx/internal/domain"
)

// Lister extracts marked function names from a testx file.
type Lister interface {
	MarkedNames(path string) ([]string, error)
}

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	lister Lister
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config, lister Lister) *Formatter {
	return &Formatter{
		config: cfg,
		lister: lister,
	}
}

// PrintRunStats displays the statistics of an expansion run
func (f *Formatter) PrintRunStats(report *domain.RunReport) {
	// Clear terminal screen
	fmt.Print("\033[2J\033[H")

	meta := report.Meta

	// Print header
	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                     Expansion Statistics                      ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	rows := []struct {
		label string
		value string
		paint func(format string, a ...interface{})
	}{
		{"Total Files", fmt.Sprintf("%d", meta.TotalFiles), color.White},
		{"Clean Files", fmt.Sprintf("%d", meta.CleanFiles), color.Green},
		{"Failed Files", fmt.Sprintf("%d", meta.FailedFiles), color.Red},
		{"Marked Functions", fmt.Sprintf("%d", meta.MarkedFunctions), color.White},
		{"Expanded Functions", fmt.Sprintf("%d", meta.ExpandedFunctions), color.Green},
		{"Diagnostics", fmt.Sprintf("%d", meta.Diagnostics), color.Red},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), color.White},
		{"Workers", fmt.Sprintf("%d", meta.Workers), color.White},
		{"Timestamp", meta.Timestamp, color.White},
	}

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Printf("│ %-31s │ ", row.label)
		row.paint("%-27s │\n", row.value)
		if i < len(rows)-1 {
			fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	for _, fe := range report.Errors {
		color.Red("✗ %s: %s", fe.File, fe.Error)
	}
	if meta.FailedFiles == 0 {
		color.Green("✓ All testx files expanded cleanly!")
	} else {
		color.Red("✗ %d file(s) failed to expand with %d diagnostic(s)", meta.FailedFiles, meta.Diagnostics)
		fmt.Println()
		f.printDiagnosticsTree(report.Details)
	}
}

// printDiagnosticsTree prints diagnostics grouped by file
func (f *Formatter) printDiagnosticsTree(diags []domain.Diagnostic) {
	if len(diags) == 0 {
		return
	}

	byFile := make(map[string][]domain.Diagnostic)
	var files []string
	for _, d := range diags {
		if _, ok := byFile[d.File]; !ok {
			files = append(files, d.File)
		}
		byFile[d.File] = append(byFile[d.File], d)
	}
	sort.Strings(files)

	for i, file := range files {
		isLastFile := i == len(files)-1
		if isLastFile {
			color.Cyan("└── %s", f.relPath(file))
		} else {
			color.Cyan("├── %s", f.relPath(file))
		}

		fileDiags := byFile[file]
		for j, d := range fileDiags {
			isLastDiag := j == len(fileDiags)-1

			var prefix string
			if isLastFile {
				if isLastDiag {
					prefix = "    └── "
				} else {
					prefix = "    ├── "
				}
			} else {
				if isLastDiag {
					prefix = "│   └── "
				} else {
					prefix = "│   ├── "
				}
			}

			fmt.Printf("%s%s %s\n", prefix,
				color.RedString("[%s]", string(d.Kind)),
				color.YellowString("%s (line %d)", d.Function, d.Line))
		}
	}
}

// PrintFileList prints a list of testx files, optionally with their marked
// functions. failedPaths is optional; files in this set are marked with [F]
// in red (from the last run's report).
func (f *Formatter) PrintFileList(files []string, showFunctions bool, failedPaths map[string]struct{}) error {
	if showFunctions {
		color.Green("Found %d testx file(s) with marked functions:\n", len(files))

		for i, file := range files {
			names, err := f.lister.MarkedNames(file)
			if err != nil {
				color.Red("Error reading testx file %s: %v", file, err)
				continue
			}

			relPath := f.relPath(file)
			failMarker := ""
			if len(failedPaths) > 0 {
				if _, ok := failedPaths[PathKey(f.config.ProjectPath, file)]; ok {
					failMarker = " " + color.RedString("[F]")
				}
			}

			isLastFile := i == len(files)-1
			if isLastFile {
				color.Cyan("└── %s%s", relPath, failMarker)
			} else {
				color.Cyan("├── %s%s", relPath, failMarker)
			}

			if len(names) == 0 {
				var prefix string
				if isLastFile {
					prefix = "    └── "
				} else {
					prefix = "│   └── "
				}
				fmt.Printf("%s%s\n", prefix, color.RedString("(no marked functions found)"))
			} else {
				for j, name := range names {
					isLastName := j == len(names)-1

					var prefix string
					if isLastFile {
						if isLastName {
							prefix = "    └── "
						} else {
							prefix = "    ├── "
						}
					} else {
						if isLastName {
							prefix = "│   └── "
						} else {
							prefix = "│   ├── "
						}
					}

					fmt.Printf("%s%s\n", prefix, color.YellowString(name))
				}
			}

			if i < len(files)-1 {
				fmt.Println()
			}
		}
	} else {
		color.Green("Found %d testx file(s):\n", len(files))

		for i, file := range files {
			failMarker := ""
			if len(failedPaths) > 0 {
				if _, ok := failedPaths[PathKey(f.config.ProjectPath, file)]; ok {
					failMarker = " " + color.RedString("[F]")
				}
			}

			if i == len(files)-1 {
				color.Cyan("└── %s%s", f.relPath(file), failMarker)
			} else {
				color.Cyan("├── %s%s", f.relPath(file), failMarker)
			}
		}
	}

	return nil
}

// CountMarkedFunctions returns the total number of marked functions across
// the given testx files.
func (f *Formatter) CountMarkedFunctions(files []string) (int, error) {
	var total int
	for _, file := range files {
		names, err := f.lister.MarkedNames(file)
		if err != nil {
			return 0, err
		}
		total += len(names)
	}
	return total, nil
}

func (f *Formatter) relPath(path string) string {
	rel, err := filepath.Rel(f.config.ProjectPath, path)
	if err != nil {
		return path
	}
	return rel
}

// PathKey returns a normalized path key for matching report entries against
// scanned files regardless of cwd.
func PathKey(projectPath, path string) string {
	p := path
	if projectPath != "" {
		if rel, err := filepath.Rel(projectPath, path); err == nil && rel != ".." && !strings.HasPrefix(rel, "..") {
			p = rel
		}
	}
	return filepath.ToSlash(p)
}
