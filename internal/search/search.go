// Package search drives a grin run: it expands the input names into files,
// picks an opener for each one and writes the grep reports in order.
package search

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/harrison/grin/internal/fileutil"
	"github.com/harrison/grin/internal/grep"
	"github.com/harrison/grin/internal/opener"
	"github.com/harrison/grin/internal/recognizer"
)

// Logger receives diagnostics about the run.
type Logger interface {
	LogDebug(message string)
	LogWarn(message string)
	LogSkipped(path, kind string)
	LogFileError(path string, err error)
	LogSummary(searched, matched, unreadable int, elapsed time.Duration)
}

// Options configures a Searcher.
type Options struct {
	Recognizer recognizer.Config
	Grep       grep.Options
	Selector   opener.Selector
	// Include is a glob matched against the basenames of files found while
	// walking directories. Files named explicitly are always searched.
	Include string
}

// Stats summarises a run.
type Stats struct {
	// Searched counts files that were opened and grepped.
	Searched int
	// Matched counts files that produced output.
	Matched int
	// Unreadable lists paths that could not be classified, listed or read.
	Unreadable []string
}

// Searcher runs searches sequentially. It is not safe for concurrent use.
type Searcher struct {
	rec      *recognizer.Recognizer
	grepper  *grep.Grepper
	selector opener.Selector
	include  *fileutil.NameMatcher
	out      io.Writer
	log      Logger
	stats    Stats
}

// New creates a Searcher writing reports to out.
func New(m grep.Matcher, opts Options, out io.Writer, log Logger) (*Searcher, error) {
	include := opts.Include
	if include == "" {
		include = "*"
	}
	matcher, err := fileutil.NewNameMatcher(include)
	if err != nil {
		return nil, fmt.Errorf("invalid include pattern: %w", err)
	}

	s := &Searcher{
		grepper:  grep.New(m, opts.Grep),
		selector: opts.Selector,
		include:  matcher,
		out:      out,
		log:      log,
	}
	s.rec = recognizer.New(opts.Recognizer,
		recognizer.WithPruneHandler(s.pruned),
		recognizer.WithErrorHandler(s.listFailed),
	)
	return s, nil
}

// Run searches every input in order. An input is a file, a directory to
// walk, or "-" for standard input. Problems with individual files are
// logged and the run continues; Run only fails when ctx is cancelled or
// the output cannot be written.
func (s *Searcher) Run(ctx context.Context, inputs []string) (Stats, error) {
	start := time.Now()
	s.stats = Stats{}

	err := s.run(ctx, inputs)

	s.log.LogSummary(s.stats.Searched, s.stats.Matched, len(s.stats.Unreadable), time.Since(start))
	return s.stats, err
}

func (s *Searcher) run(ctx context.Context, inputs []string) error {
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}

		if input == opener.StdinName {
			if err := s.searchFile(ctx, input, recognizer.Text); err != nil {
				return err
			}
			continue
		}

		kind := s.rec.Classify(input)
		switch {
		case kind == recognizer.Text || kind == recognizer.Gzip:
			if err := s.searchFile(ctx, input, kind); err != nil {
				return err
			}
		case kind == recognizer.Directory:
			if err := s.searchDir(ctx, input); err != nil {
				return err
			}
		default:
			s.pruned(input, kind)
		}
	}
	return nil
}

func (s *Searcher) searchDir(ctx context.Context, dir string) error {
	for path, kind := range s.rec.Walk(dir) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if kind == recognizer.Binary {
			s.log.LogSkipped(path, kind.String())
			continue
		}
		if !s.include.Match(path) {
			continue
		}
		if err := s.searchFile(ctx, path, kind); err != nil {
			return err
		}
	}
	return nil
}

// searchFile greps one file. Read failures are logged; only cancellation
// and write failures are returned.
func (s *Searcher) searchFile(ctx context.Context, path string, kind recognizer.Kind) error {
	o := s.selector.For(kind)
	if o == nil {
		s.log.LogSkipped(path, kind.String())
		return nil
	}

	s.stats.Searched++
	report, err := s.grepper.GrepFile(ctx, path, o)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		s.log.LogFileError(path, err)
		s.stats.Unreadable = append(s.stats.Unreadable, path)
		return nil
	}
	if report == "" {
		return nil
	}

	s.stats.Matched++
	if _, err := io.WriteString(s.out, report); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

func (s *Searcher) pruned(path string, kind recognizer.Kind) {
	if kind == recognizer.Unreadable {
		s.log.LogWarn(fmt.Sprintf("%s: unreadable", path))
		s.stats.Unreadable = append(s.stats.Unreadable, path)
		return
	}
	s.log.LogSkipped(path, kind.String())
}

func (s *Searcher) listFailed(path string, err error) {
	s.log.LogFileError(path, err)
	s.stats.Unreadable = append(s.stats.Unreadable, path)
}
