package cli

import "gotestx/internal/config"

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Workers:    f.Workers,
		SourcePath: f.SourcePath,
		NameFilter: f.NameFilter,
		TestCases:  f.TestCases,
		FailFast:   f.FailFast,
		DryRun:     f.DryRun,
		OpenDiags:  f.OpenDiags,
	}
}
