package fileutil

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultInput is searched when no names are given.
const DefaultInput = "."

// InputOptions configures CollectInputs
type InputOptions struct {
	// FilesFrom names a file listing inputs; "-" reads Stdin
	FilesFrom string
	// NullSeparated splits FilesFrom on NUL bytes instead of newlines
	NullSeparated bool
	// Args are the names given on the command line
	Args []string
	// Stdin replaces os.Stdin when FilesFrom is "-"
	Stdin io.Reader
}

// ReadNames reads names from r, one per line or NUL-separated.
// Names are trimmed and empty ones are dropped.
func ReadNames(r io.Reader, nullSeparated bool) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read names: %w", err)
	}

	sep := []byte("\n")
	if nullSeparated {
		sep = []byte{0}
	}

	var names []string
	for _, field := range bytes.Split(data, sep) {
		if name := strings.TrimSpace(string(field)); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// CollectInputs returns the names listed in opts.FilesFrom followed by
// opts.Args. If both are empty the result is just DefaultInput.
func CollectInputs(opts InputOptions) ([]string, error) {
	var names []string

	if opts.FilesFrom != "" {
		listed, err := readNamesFrom(opts.FilesFrom, opts.NullSeparated, opts.Stdin)
		if err != nil {
			return nil, err
		}
		names = append(names, listed...)
	}

	for _, arg := range opts.Args {
		if arg != "" {
			names = append(names, arg)
		}
	}

	if len(names) == 0 {
		names = []string{DefaultInput}
	}
	return names, nil
}

func readNamesFrom(path string, nullSeparated bool, stdin io.Reader) ([]string, error) {
	if path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		return ReadNames(stdin, nullSeparated)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open files-from file: %w", err)
	}
	defer f.Close()

	return ReadNames(f, nullSeparated)
}
