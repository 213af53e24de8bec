package storage

import (
	"time"

	"gotestx/internal/config"
	"gotestx/internal/domain"
)

// Storage persists and loads expansion run reports (e.g. for the diags viewer).
type Storage interface {
	Save(results []domain.FileResult, duration time.Duration, workers int) error
	Load() (*domain.RunReport, error)
	// SaveReport writes the full report (e.g. after resolved-state updates).
	SaveReport(report *domain.RunReport) error
}

// JSONStorage stores reports in a JSON file under the configured report path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's report path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
