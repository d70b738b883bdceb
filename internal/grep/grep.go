// Package grep searches a line-oriented byte stream for a pattern, gathers
// before and after context around every match and renders the result.
//
// The engine never recovers from I/O errors; a stream that fails while being
// read is reported to the caller, which decides whether to move on.
package grep

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/harrison/grin/internal/recognizer"
)

// Matcher finds match offsets in a line. It is satisfied by *regexp.Regexp
// and by the matchers returned from pattern.Compile.
type Matcher interface {
	FindAllIndex(b []byte, n int) [][]int
}

// Opener turns a path into a byte stream. Implementations decide how the
// bytes are produced (plain read, decompression, source transformation).
type Opener interface {
	Open(path string) (io.ReadCloser, error)
}

// Options controls context capture and report rendering.
type Options struct {
	// BeforeContext is the number of lines shown before each match.
	BeforeContext int
	// AfterContext is the number of lines shown after each match.
	AfterContext int
	// ShowLineNumbers prefixes each line with its 1-based number and role separator.
	ShowLineNumbers bool
	// ShowFilename prints a "<filename>:" header above each file's lines.
	ShowFilename bool
	// ShowMatch prints matching lines; when false only the names of
	// matching files are printed.
	ShowMatch bool
	// ShowEmacs prints "<filename>:<n>: <line>" for every line.
	ShowEmacs bool
	// UseColor highlights filenames and matches using Styles.
	UseColor bool
	// BinaryBytes is the sniffing sample size handed to the recognizer.
	BinaryBytes int
	// Styles holds the colors used when UseColor is set.
	Styles Styles
}

// DefaultOptions returns the defaults: no context, line numbers and
// filenames shown, no color.
func DefaultOptions() Options {
	return Options{
		ShowLineNumbers: true,
		ShowFilename:    true,
		ShowMatch:       true,
		BinaryBytes:     recognizer.DefaultBinaryBytes,
		Styles:          DefaultStyles(),
	}
}

// Grepper greps streams for a single compiled pattern. It holds no state
// between calls.
type Grepper struct {
	matcher Matcher
	opts    Options
}

// New creates a Grepper. Negative context sizes are treated as zero.
func New(m Matcher, opts Options) *Grepper {
	opts.BeforeContext = max(opts.BeforeContext, 0)
	opts.AfterContext = max(opts.AfterContext, 0)
	return &Grepper{matcher: m, opts: opts}
}

// Options returns the options in use.
func (g *Grepper) Options() Options {
	return g.opts
}

// Grep scans r line by line and returns the matched lines plus requested
// context, deduplicated and sorted by line index. It stops with ctx.Err()
// once ctx is done.
func (g *Grepper) Grep(ctx context.Context, r io.Reader) ([]ContextLine, error) {
	before, after := g.opts.BeforeContext, g.opts.AfterContext
	br := bufio.NewReader(r)

	var captured []ContextLine
	// window holds the last before+1 lines; its final entry is the current line.
	window := make([][]byte, 0, before+1)
	afterBudget := 0

	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			if len(window) == before+1 {
				copy(window, window[1:])
				window = window[:before]
			}
			window = append(window, line)

			if spans := g.search(line); spans == nil {
				if afterBudget > 0 {
					captured = append(captured, ContextLine{Index: i, Role: Post, Line: line})
					afterBudget--
				}
			} else {
				afterBudget = after
				first := i - len(window) + 1
				for j, prev := range window[:len(window)-1] {
					captured = append(captured, ContextLine{Index: first + j, Role: Pre, Line: prev})
				}
				captured = append(captured, ContextLine{Index: i, Role: Match, Line: line, Spans: spans})
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
	}

	return Uniquify(captured), nil
}

// HasMatch reports whether any line of r matches, stopping at the first one.
func (g *Grepper) HasMatch(ctx context.Context, r io.Reader) (bool, error) {
	br := bufio.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		line, err := br.ReadBytes('\n')
		if len(line) > 0 && g.search(line) != nil {
			return true, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}
	}
}

// search returns the match spans in line, or nil. The trailing newline is
// not part of the searched text so "$" anchors at the end of the content.
func (g *Grepper) search(line []byte) []Span {
	content := line
	if n := len(content); n > 0 && content[n-1] == '\n' {
		content = content[:n-1]
	}
	found := g.matcher.FindAllIndex(content, -1)
	if len(found) == 0 {
		return nil
	}
	spans := make([]Span, len(found))
	for i, loc := range found {
		spans[i] = Span{Start: loc[0], End: loc[1]}
	}
	return spans
}

// GrepFile opens path through opener, greps it and renders the report.
// The stream is closed before GrepFile returns. Cancellation is returned
// unwrapped.
func (g *Grepper) GrepFile(ctx context.Context, path string, opener Opener) (string, error) {
	rc, err := opener.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer rc.Close()

	if !g.opts.ShowMatch {
		found, err := g.HasMatch(ctx, rc)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		if !found {
			return "", nil
		}
		return path + "\n", nil
	}

	lines, err := g.Grep(ctx, rc)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return g.Report(lines, path), nil
}
