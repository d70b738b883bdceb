package search

import (
	"context"
	"fmt"
	"io"

	"github.com/harrison/grin/internal/fileutil"
	"github.com/harrison/grin/internal/recognizer"
)

// ListOptions configures List.
type ListOptions struct {
	Recognizer recognizer.Config
	// Glob is matched against basenames; "*" lists everything.
	Glob string
	// NullSeparated terminates each path with NUL instead of a newline.
	NullSeparated bool
}

// List walks each directory in dirs and writes the paths of the files whose
// basename matches the glob. Like "find -print0", the last path also gets
// its terminator. It returns the number of paths written.
func List(ctx context.Context, dirs []string, opts ListOptions, out io.Writer, log Logger) (int, error) {
	matcher, err := fileutil.NewNameMatcher(opts.Glob)
	if err != nil {
		return 0, err
	}

	term := "\n"
	if opts.NullSeparated {
		term = "\x00"
	}

	rec := recognizer.New(opts.Recognizer,
		recognizer.WithPruneHandler(func(path string, kind recognizer.Kind) {
			if kind == recognizer.Unreadable {
				log.LogWarn(fmt.Sprintf("%s: unreadable", path))
				return
			}
			log.LogSkipped(path, kind.String())
		}),
		recognizer.WithErrorHandler(log.LogFileError),
	)

	listed := 0
	for _, dir := range dirs {
		for path := range rec.Walk(dir) {
			if err := ctx.Err(); err != nil {
				return listed, err
			}
			if !matcher.Match(path) {
				continue
			}
			if _, err := io.WriteString(out, path+term); err != nil {
				return listed, fmt.Errorf("write results: %w", err)
			}
			listed++
		}
	}
	return listed, nil
}
