package execution

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotestx/internal/config"
	"gotestx/internal/expand"
)

const goodSrc = `//go:build testx

package demo

import "testing"

func setup() uint32 {
	return 4711
}

//testx:test
func TestSeeded(t *testing.T, num uint32) {
	t.Log(num)
}
`

const badSrc = `//go:build testx

package demo

import "testing"

//testx:test
func TestOrphan(t *testing.T, num uint32) {
	t.Log(num)
}
`

func newRunner(dryRun bool) *Runner {
	cfg := &config.Config{Flags: config.Flags{DryRun: dryRun}}
	return NewRunner(cfg, expand.New())
}

func TestOutputPath(t *testing.T) {
	got := OutputPath(filepath.Join("pkg", "store_testx.go"))
	want := filepath.Join("pkg", "store_testx_test.go")
	if got != want {
		t.Errorf("OutputPath = %q, want %q", got, want)
	}
}

func TestRunnerWritesGeneratedFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "runner-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	source := filepath.Join(dir, "store_testx.go")
	if err := os.WriteFile(source, []byte(goodSrc), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	result := newRunner(false).Run(source, 1)
	if !result.Clean() {
		t.Fatalf("result not clean: err=%v diags=%v", result.Err, result.Diagnostics)
	}
	if !result.Written {
		t.Fatal("generated file not written")
	}

	data, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("read generated file: %v", err)
	}
	if !strings.HasPrefix(string(data), expand.Header) {
		t.Errorf("generated file missing the header:\n%s", data)
	}
}

func TestRunnerDryRun(t *testing.T) {
	dir, err := os.MkdirTemp("", "runner-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	source := filepath.Join(dir, "store_testx.go")
	if err := os.WriteFile(source, []byte(goodSrc), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	result := newRunner(true).Run(source, 1)
	if !result.Clean() || result.Expanded != 1 {
		t.Fatalf("dry run still expands: %+v", result)
	}
	if result.Written {
		t.Error("dry run wrote a file")
	}
	if _, err := os.Stat(result.OutputPath); !os.IsNotExist(err) {
		t.Errorf("generated file exists after dry run: %v", err)
	}
}

func TestRunnerDiagnosticsSkipWrite(t *testing.T) {
	dir, err := os.MkdirTemp("", "runner-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	source := filepath.Join(dir, "orphan_testx.go")
	if err := os.WriteFile(source, []byte(badSrc), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	result := newRunner(false).Run(source, 1)
	if len(result.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(result.Diagnostics))
	}
	if result.Written {
		t.Error("file with diagnostics was written")
	}
	if _, err := os.Stat(result.OutputPath); !os.IsNotExist(err) {
		t.Errorf("generated file exists despite diagnostics: %v", err)
	}
}

func TestRunnerUnreadableFile(t *testing.T) {
	result := newRunner(false).Run(filepath.Join("nope", "missing_testx.go"), 1)
	if result.Err == nil {
		t.Fatal("expected an error for an unreadable file")
	}
	if result.Clean() {
		t.Error("result with Err reported clean")
	}
}
