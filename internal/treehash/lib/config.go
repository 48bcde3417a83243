package lib

import (
	"fmt"
	"os"
	"strings"

	"github.com/denormal/go-gitignore"
)

// IgnoreMatcher decides which entries a walk leaves out, using gitignore syntax.
type IgnoreMatcher struct {
	matcher gitignore.GitIgnore
}

// LoadIgnoreFile compiles the patterns in path. Unlike the default walk, which
// excludes nothing, a missing ignore file is an error: the user asked for it.
func LoadIgnoreFile(path string) (*IgnoreMatcher, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ignore file: %w", err)
	}
	return NewIgnoreMatcher(strings.Split(string(content), "\n")), nil
}

// NewIgnoreMatcher compiles raw gitignore lines. Comments and blank lines are dropped.
func NewIgnoreMatcher(lines []string) *IgnoreMatcher {
	var patterns []string
	for _, p := range lines {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		// Normalize Windows-style backslashes to forward slashes.
		trimmed = strings.ReplaceAll(trimmed, "\\", "/")
		patterns = append(patterns, trimmed)
	}

	// The error handler tells the parser to skip bad lines and continue.
	m := gitignore.New(strings.NewReader(strings.Join(patterns, "\n")), "", func(gitignore.Error) bool { return true })
	if m == nil {
		m = gitignore.New(strings.NewReader(""), "", nil)
	}
	return &IgnoreMatcher{matcher: m}
}

// Excluded reports whether the root-relative, slash-separated path is ignored.
// It has the shape WithExclude expects.
func (m *IgnoreMatcher) Excluded(rel string, isDir bool) bool {
	match := m.matcher.Relative(rel, isDir)
	if match == nil {
		return false
	}
	return match.Ignore()
}
