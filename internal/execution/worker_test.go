package execution

import (
	"os"
	"path/filepath"
	"testing"

	"gotestx/internal/config"
	"gotestx/internal/domain"
	"gotestx/internal/expand"
)

// stubProcessor fails the paths it is told to and expands the rest.
type stubProcessor struct {
	bad map[string]bool
}

func (p stubProcessor) Run(sourcePath string, workerID int) domain.FileResult {
	result := domain.FileResult{
		SourcePath: sourcePath,
		OutputPath: OutputPath(sourcePath),
	}
	if p.bad[sourcePath] {
		result.Marked = 1
		result.Diagnostics = []domain.Diagnostic{{
			Kind:     domain.MissingSetup,
			File:     sourcePath,
			Line:     1,
			Function: "TestStub",
		}}
		return result
	}
	result.Marked = 1
	result.Expanded = 1
	result.Written = true
	return result
}

func TestWorkerPoolExecute(t *testing.T) {
	dir, err := os.MkdirTemp("", "pool-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	files := map[string]string{
		"store_testx.go":  goodSrc,
		"order_testx.go":  goodSrc,
		"orphan_testx.go": badSrc,
	}
	var paths []string
	for name, src := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(src), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
		paths = append(paths, path)
	}

	cfg := &config.Config{Workers: 2}
	pool := NewWorkerPool(cfg, NewRunner(cfg, expand.New()), NewRoundRobinScheduler())

	results, duration, err := pool.Execute(paths)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if duration <= 0 {
		t.Error("duration not measured")
	}

	var clean, failed, written int
	for _, r := range results {
		if r.Clean() {
			clean++
		} else {
			failed++
		}
		if r.Written {
			written++
		}
	}
	if clean != 2 || failed != 1 {
		t.Errorf("clean = %d, failed = %d, want 2/1", clean, failed)
	}
	if written != 2 {
		t.Errorf("written = %d, want 2", written)
	}
}

func TestWorkerPoolEmptyInput(t *testing.T) {
	cfg := &config.Config{Workers: 2}
	pool := NewWorkerPool(cfg, stubProcessor{}, NewRoundRobinScheduler())

	results, duration, err := pool.Execute(nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if results != nil || duration != 0 {
		t.Errorf("Execute(nil) = %v, %v, want no work", results, duration)
	}
}

func TestWorkerPoolFailFast(t *testing.T) {
	files := []string{"bad_testx.go", "good1_testx.go", "good2_testx.go"}

	// One worker keeps the queue order deterministic: the first file fails,
	// so no later file may contribute a result.
	cfg := &config.Config{Workers: 1}
	pool := NewWorkerPool(cfg, stubProcessor{bad: map[string]bool{"bad_testx.go": true}}, NewRoundRobinScheduler())

	results, _, err := pool.ExecuteWithOptions(files, true)
	if err != nil {
		t.Fatalf("ExecuteWithOptions: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results after fail-fast, want 1", len(results))
	}
	if results[0].SourcePath != "bad_testx.go" || results[0].Clean() {
		t.Errorf("unexpected surviving result: %+v", results[0])
	}
}

// gatedProcessor fails the bad paths immediately and holds every other path
// until a failure has been reported, modeling work that is already in flight
// on another worker when fail-fast triggers.
type gatedProcessor struct {
	bad    map[string]bool
	failed chan struct{}
}

func (p *gatedProcessor) Run(sourcePath string, workerID int) domain.FileResult {
	result := domain.FileResult{
		SourcePath: sourcePath,
		OutputPath: OutputPath(sourcePath),
	}
	if p.bad[sourcePath] {
		result.Marked = 1
		result.Diagnostics = []domain.Diagnostic{{
			Kind:     domain.MissingSetup,
			File:     sourcePath,
			Line:     1,
			Function: "TestStub",
		}}
		close(p.failed)
		return result
	}
	<-p.failed
	result.Marked = 1
	result.Expanded = 1
	return result
}

func TestWorkerPoolFailFastKeepsInFlightResults(t *testing.T) {
	files := []string{"good_testx.go", "bad_testx.go"}
	proc := &gatedProcessor{
		bad:    map[string]bool{"bad_testx.go": true},
		failed: make(chan struct{}),
	}

	cfg := &config.Config{Workers: 2}
	pool := NewWorkerPool(cfg, proc, NewRoundRobinScheduler())

	results, _, err := pool.ExecuteWithOptions(files, true)
	if err != nil {
		t.Fatalf("ExecuteWithOptions: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2; a result computed before the failure was reported must not be dropped", len(results))
	}

	var sawGood, sawBad bool
	for _, r := range results {
		switch r.SourcePath {
		case "good_testx.go":
			sawGood = r.Clean()
		case "bad_testx.go":
			sawBad = !r.Clean()
		}
	}
	if !sawGood || !sawBad {
		t.Errorf("results incomplete: %+v", results)
	}
}

func TestWorkerPoolFailFastAllClean(t *testing.T) {
	files := []string{"a_testx.go", "b_testx.go", "c_testx.go"}

	cfg := &config.Config{Workers: 2}
	pool := NewWorkerPool(cfg, stubProcessor{}, NewRoundRobinScheduler())

	results, _, err := pool.ExecuteWithOptions(files, true)
	if err != nil {
		t.Fatalf("ExecuteWithOptions: %v", err)
	}
	if len(results) != len(files) {
		t.Errorf("got %d results, want %d; fail-fast must not drop clean files", len(results), len(files))
	}
}
