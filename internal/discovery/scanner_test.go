package discovery

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFiles(t *testing.T, root string, paths []string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, p)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(full, []byte("package demo\n"), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
	}
}

func TestScan(t *testing.T) {
	dir, err := os.MkdirTemp("", "scanner-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	writeFiles(t, dir, []string{
		"store_testx.go",
		"sub/order_testx.go",
		"sub/order.go",
		"store_testx_test.go",
		"vendor/dep_testx.go",
		".cache/hidden_testx.go",
	})

	scanner := NewScanner([]string{"vendor", "node_modules"}, SourceSuffix)
	files, err := scanner.Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := []string{
		filepath.Join(dir, "store_testx.go"),
		filepath.Join(dir, "sub", "order_testx.go"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Scan = %v, want %v", files, want)
	}
}

func TestScanGeneratedSuffix(t *testing.T) {
	dir, err := os.MkdirTemp("", "scanner-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	writeFiles(t, dir, []string{
		"store_testx.go",
		"store_testx_test.go",
	})

	scanner := NewScanner(nil, GeneratedSuffix)
	files, err := scanner.Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []string{filepath.Join(dir, "store_testx_test.go")}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Scan = %v, want %v", files, want)
	}
}

func TestScanErrors(t *testing.T) {
	dir, err := os.MkdirTemp("", "scanner-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	scanner := NewScanner(nil, SourceSuffix)

	if _, err := scanner.Scan(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected an error for a missing root")
	}

	file := filepath.Join(dir, "plain.go")
	if err := os.WriteFile(file, []byte("package demo\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := scanner.Scan(file); err == nil {
		t.Error("expected an error when the root is a file")
	}
}
