// Package pattern compiles the single search expression used by grin.
//
// Two engines are available. The default is Go's RE2 engine (regexp), which
// runs in linear time. The regexp2 engine is a backtracking engine that
// accepts lookaround and backreferences for expressions written for
// Perl-style tools.
package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// Engine names a regular expression implementation.
type Engine string

const (
	// EngineRE2 uses the standard library regexp package.
	EngineRE2 Engine = "re2"
	// EngineRegexp2 uses github.com/dlclark/regexp2.
	EngineRegexp2 Engine = "regexp2"
)

// Engines lists the valid engine names.
var Engines = []Engine{EngineRE2, EngineRegexp2}

// Matcher finds match offsets in a line. *regexp.Regexp satisfies it.
type Matcher interface {
	// FindAllIndex returns the [start, end) byte offsets of successive
	// non-overlapping matches. n < 0 means all matches.
	FindAllIndex(b []byte, n int) [][]int
}

// Options controls compilation.
type Options struct {
	Engine     Engine
	IgnoreCase bool
}

// Compile compiles expr for the requested engine. An empty engine selects RE2.
func Compile(expr string, opts Options) (Matcher, error) {
	switch opts.Engine {
	case "", EngineRE2:
		if opts.IgnoreCase {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
		return re, nil
	case EngineRegexp2:
		flags := regexp2.None
		if opts.IgnoreCase {
			flags |= regexp2.IgnoreCase
		}
		re, err := regexp2.Compile(expr, flags)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
		return &backtracking{re: re}, nil
	default:
		return nil, fmt.Errorf("unknown engine %q, must be one of: %s", opts.Engine, engineList())
	}
}

// ValidEngine reports whether name is a known engine.
func ValidEngine(name string) bool {
	for _, e := range Engines {
		if string(e) == name {
			return true
		}
	}
	return false
}

func engineList() string {
	names := make([]string, len(Engines))
	for i, e := range Engines {
		names[i] = string(e)
	}
	return strings.Join(names, ", ")
}

// backtracking adapts regexp2, which reports positions in runes, to byte offsets.
type backtracking struct {
	re *regexp2.Regexp
}

func (b *backtracking) FindAllIndex(line []byte, n int) [][]int {
	if n == 0 {
		return nil
	}
	s := string(line)

	// offsets[i] is the byte offset of rune i; the final entry is len(s).
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(s))

	var spans [][]int
	m, err := b.re.FindStringMatch(s)
	for err == nil && m != nil {
		spans = append(spans, []int{offsets[m.Index], offsets[m.Index+m.Length]})
		if n > 0 && len(spans) == n {
			break
		}
		m, err = b.re.FindNextMatch(m)
	}
	return spans
}
