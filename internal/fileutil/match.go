package fileutil

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
)

// NameMatcher matches a glob against path basenames.
type NameMatcher struct {
	pattern string
	g       glob.Glob
}

// NewNameMatcher compiles pattern. "*" matches every name.
func NewNameMatcher(pattern string) (*NameMatcher, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
	}
	return &NameMatcher{pattern: pattern, g: g}, nil
}

// Pattern returns the glob source.
func (m *NameMatcher) Pattern() string {
	return m.pattern
}

// Match reports whether the basename of path matches.
func (m *NameMatcher) Match(path string) bool {
	return m.g.Match(filepath.Base(path))
}
