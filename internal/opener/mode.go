package opener

import (
	"fmt"
	"io"
	"strings"

	"github.com/harrison/grin/internal/recognizer"
)

// Mode selects how text files are transformed before grepping.
type Mode string

const (
	// ModeNone greps files unchanged.
	ModeNone Mode = "none"
	// ModePython keeps selected parts of Python source.
	ModePython Mode = "python"
	// ModeImports greps normalized Python import statements.
	ModeImports Mode = "imports"
	// ModeMarkdown greps the prose and code of Markdown documents.
	ModeMarkdown Mode = "markdown"
)

// Modes lists every supported Mode.
var Modes = []Mode{ModeNone, ModePython, ModeImports, ModeMarkdown}

// ParseMode converts s to a Mode. The empty string means ModeNone.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeNone, nil
	}
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return "", fmt.Errorf("unknown transform %q, must be one of: %s", s, strings.Join(names, ", "))
}

// Selector picks the opener for a classified file.
type Selector struct {
	Mode   Mode
	Python PythonOptions
	// Stdin replaces os.Stdin for the path "-".
	Stdin io.Reader
}

// For returns the opener for a file of the given kind, or nil when files of
// that kind are not grepped. Gzip files are decompressed before any
// transformation is applied.
func (s Selector) For(kind recognizer.Kind) Opener {
	var base Opener
	switch kind {
	case recognizer.Text:
		base = Plain{Stdin: s.Stdin}
	case recognizer.Gzip:
		base = Gzip{Stdin: s.Stdin}
	default:
		return nil
	}

	switch s.Mode {
	case ModePython:
		return &Python{Source: base, Options: s.Python}
	case ModeImports:
		return &Imports{Source: base}
	case ModeMarkdown:
		return NewMarkdown(base)
	default:
		return base
	}
}
