package domain

import "time"

// FileResult represents the outcome of expanding one testx source file
type FileResult struct {
	SourcePath  string        // Path to the testx file that was expanded
	OutputPath  string        // Path of the generated test file
	Marked      int           // Number of marked functions found
	Expanded    int           // Number of functions successfully expanded
	Written     bool          // Whether the generated file was written
	Diagnostics []Diagnostic  // Expansion failures, one per bad function
	Err         error         // I/O or syntax error for the whole file
	Duration    time.Duration // Time taken to expand
}

// Clean reports whether the file expanded without diagnostics or errors.
func (r FileResult) Clean() bool {
	return r.Err == nil && len(r.Diagnostics) == 0
}

// ReportMeta contains metadata about an expansion run
type ReportMeta struct {
	TotalFiles        int     `json:"total_files"`
	CleanFiles        int     `json:"clean_files"`
	FailedFiles       int     `json:"failed_files"`
	MarkedFunctions   int     `json:"marked_functions"`
	ExpandedFunctions int     `json:"expanded_functions"`
	Diagnostics       int     `json:"diagnostics"`
	Duration          string  `json:"duration"`
	DurationSeconds   float64 `json:"duration_seconds"`
	Workers           int     `json:"workers"`
	Timestamp         string  `json:"timestamp"`
}

// FileError records a file that could not be processed at all
// (unreadable or syntactically invalid).
type FileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// RunReport is the complete persisted output of an expansion run
type RunReport struct {
	Meta    ReportMeta   `json:"meta"`
	Details []Diagnostic `json:"details"`
	Errors  []FileError  `json:"errors,omitempty"`
}
