// Package fileutil gathers the names a search starts from and filters
// walked paths by name.
//
// # Inputs
//
// Names come from the command line and, optionally, from a file listing one
// name per line (or NUL-separated names, as printed by "find -print0" or
// "grind -0"). Surrounding whitespace is trimmed and empty names are dropped.
// When no names are given at all the current directory is searched:
//
//	names, err := fileutil.CollectInputs(fileutil.InputOptions{
//	    FilesFrom:     "list.txt",
//	    NullSeparated: false,
//	    Args:          args,
//	})
//
// # Name patterns
//
// NameMatcher matches shell-style globs against the basename of a path, so
// "*.go" selects Go files at any depth:
//
//	m, err := fileutil.NewNameMatcher("*.go")
//	if m.Match("internal/cmd/root.go") { ... }
package fileutil
