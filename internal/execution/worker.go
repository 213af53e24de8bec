package execution

import (
	"context"
	"sync"
	"time"

	"gotestx/internal/config"
	"gotestx/internal/domain"
	"gotestx/internal/ui"
)

// Processor expands one file; the Runner is the production implementation.
type Processor interface {
	Run(sourcePath string, workerID int) domain.FileResult
}

// WorkerPool manages a pool of workers for parallel file expansion.
// Expansion of one file is referentially independent of every other, so
// files can be processed without coordination beyond progress accounting.
type WorkerPool struct {
	config    *config.Config
	processor Processor
	scheduler Scheduler
	progress  *ui.ProgressBar
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, processor Processor, scheduler Scheduler) *WorkerPool {
	return &WorkerPool{
		config:    cfg,
		processor: processor,
		scheduler: scheduler,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Execute expands all files in parallel (no fail-fast).
func (wp *WorkerPool) Execute(files []string) ([]domain.FileResult, time.Duration, error) {
	return wp.ExecuteWithOptions(files, false)
}

// ExecuteWithOptions expands files with optional fail-fast (stop on first
// file that fails to expand).
func (wp *WorkerPool) ExecuteWithOptions(files []string, failFast bool) ([]domain.FileResult, time.Duration, error) {
	if len(files) == 0 {
		return nil, 0, nil
	}
	if !failFast {
		return wp.executeAll(files)
	}
	return wp.executeFailFast(files)
}

// executeAll gives every worker a pre-scheduled slice of files.
func (wp *WorkerPool) executeAll(files []string) ([]domain.FileResult, time.Duration, error) {
	workerCount := wp.config.Workers
	if workerCount <= 0 {
		workerCount = 1
	}

	results := make(chan domain.FileResult, len(files))
	distribution := wp.scheduler.Schedule(files, workerCount)

	var mu sync.Mutex
	var completedFiles, expandedFuncs, diagCount int
	startTime := time.Now()

	var wg sync.WaitGroup
	for i, slice := range distribution {
		wg.Add(1)
		go func(workerID int, slice []string) {
			defer wg.Done()
			for _, path := range slice {
				result := wp.processor.Run(path, workerID)
				results <- result
				mu.Lock()
				completedFiles++
				expandedFuncs += result.Expanded
				diagCount += len(result.Diagnostics)
				if result.Err != nil {
					diagCount++
				}
				if wp.progress != nil {
					wp.progress.Update(completedFiles, expandedFuncs, diagCount)
				}
				mu.Unlock()
			}
		}(i+1, slice)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.FileResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}

// executeFailFast pulls files from a shared queue and stops handing out
// work after the first file that fails.
func (wp *WorkerPool) executeFailFast(files []string) ([]domain.FileResult, time.Duration, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fileQueue := make(chan string, 1)
	results := make(chan domain.FileResult, len(files))

	go func() {
		defer close(fileQueue)
		for _, file := range files {
			select {
			case <-ctx.Done():
				return
			case fileQueue <- file:
			}
		}
	}()

	var mu sync.Mutex
	var completedFiles, expandedFuncs, diagCount int
	startTime := time.Now()
	workerCount := wp.config.Workers
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for path := range fileQueue {
				// Drain queued work without processing once a failure
				// canceled the run. Results already computed by other
				// workers are still collected below, so the report
				// reflects every file that was actually processed.
				select {
				case <-ctx.Done():
					continue
				default:
				}

				result := wp.processor.Run(path, workerID)
				results <- result
				mu.Lock()
				completedFiles++
				expandedFuncs += result.Expanded
				diagCount += len(result.Diagnostics)
				if result.Err != nil {
					diagCount++
				}
				if wp.progress != nil {
					wp.progress.Update(completedFiles, expandedFuncs, diagCount)
				}
				mu.Unlock()
				if !result.Clean() {
					cancel()
				}
			}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.FileResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}
