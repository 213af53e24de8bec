package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters files by name pattern using wildcard matching.
// Supports patterns like "*store_testx.go" or "*order*".
func (f *Filter) FilterByName(files []string, pattern string) []string {
	if pattern == "" {
		return files
	}

	var filtered []string
	for _, file := range files {
		if matchName(filepath.Base(file), pattern) {
			filtered = append(filtered, file)
		}
	}
	return filtered
}

func matchName(name, pattern string) bool {
	// filepath.Match covers anchored * and ? patterns
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	// No wildcards: plain substring match
	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	// Unanchored wildcard patterns like "*order*": every literal part must
	// appear in the name
	parts := strings.Split(pattern, "*")
	seen := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		seen = true
		if !strings.Contains(name, part) {
			return false
		}
	}
	return seen
}
