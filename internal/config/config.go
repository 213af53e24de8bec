package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	SourcePath  string

	// Report settings
	ReportDir  string
	ReportFile string

	// Expansion settings
	Workers int

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Workers    int
	SourcePath string
	NameFilter string
	TestCases  bool
	FailFast   bool
	DryRun     bool
	OpenDiags  bool
}

// New creates a new Config with defaults and applies .env overrides.
func New() *Config {
	cfg := &Config{
		ProjectPath: DefaultProjectPath,
		SourcePath:  DefaultSourcePath,
		ReportDir:   DefaultReportDir,
		ReportFile:  DefaultReportFile,
		Workers:     DefaultWorkers,
		Flags:       Flags{Workers: DefaultWorkers},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)

	cfg.applyEnv()
	return cfg
}

// applyEnv loads a .env file when present and applies GOTESTX_* overrides.
// A missing .env file is not an error.
func (c *Config) applyEnv() {
	_ = godotenv.Load(filepath.Join(c.ProjectPath, ".env"))

	if v := os.Getenv("GOTESTX_SOURCE_PATH"); v != "" {
		c.SourcePath = v
	}
	if v := os.Getenv("GOTESTX_REPORT_DIR"); v != "" {
		c.ReportDir = v
	}
	if v := os.Getenv("GOTESTX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Workers = n
		}
	}
}

// GetSourcePath returns the scan root, using the flag if provided
func (c *Config) GetSourcePath() string {
	if c.Flags.SourcePath != "" {
		// If SourcePath is provided, make it relative to ProjectPath if it's not absolute
		if filepath.IsAbs(c.Flags.SourcePath) {
			return c.Flags.SourcePath
		}
		return filepath.Join(c.ProjectPath, c.Flags.SourcePath)
	}

	// Default: combine project path and source path
	return filepath.Join(c.ProjectPath, c.SourcePath)
}

// GetReportPath returns the full path to the report JSON file. Resolves to
// an absolute path so expand and diags always read/write the same file
// regardless of cwd.
func (c *Config) GetReportPath() string {
	p := filepath.Join(c.ProjectPath, c.ReportDir, c.ReportFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
