package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gotestx/internal/domain"
)

// BuildReport summarizes file results into a run report.
func BuildReport(results []domain.FileResult, duration time.Duration, workers int) *domain.RunReport {
	report := &domain.RunReport{}

	for _, r := range results {
		report.Meta.TotalFiles++
		report.Meta.MarkedFunctions += r.Marked
		report.Meta.ExpandedFunctions += r.Expanded
		if r.Clean() {
			report.Meta.CleanFiles++
		} else {
			report.Meta.FailedFiles++
		}
		report.Details = append(report.Details, r.Diagnostics...)
		if r.Err != nil {
			report.Errors = append(report.Errors, domain.FileError{
				File:  r.SourcePath,
				Error: r.Err.Error(),
			})
		}
	}

	report.Meta.Diagnostics = len(report.Details)
	report.Meta.Duration = duration.String()
	report.Meta.DurationSeconds = duration.Seconds()
	report.Meta.Workers = workers
	report.Meta.Timestamp = time.Now().Format(time.RFC3339)
	return report
}

// Save writes an expansion run report to the configured JSON report file.
func (s *JSONStorage) Save(results []domain.FileResult, duration time.Duration, workers int) error {
	return s.SaveReport(BuildReport(results, duration, workers))
}

// Load reads the last run report from the configured JSON report file.
func (s *JSONStorage) Load() (*domain.RunReport, error) {
	path := s.cfg.GetReportPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}
	var report domain.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &report, nil
}

// SaveReport writes the full report to the configured JSON file.
func (s *JSONStorage) SaveReport(report *domain.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	path := s.cfg.GetReportPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
