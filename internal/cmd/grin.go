package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/grin/internal/config"
	"github.com/harrison/grin/internal/display"
	"github.com/harrison/grin/internal/fileutil"
	"github.com/harrison/grin/internal/pattern"
	"github.com/harrison/grin/internal/search"
)

// NewGrinCommand creates the grin command
func NewGrinCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grin [flags] <regex> [files or directories...]",
		Short: "Search files and directory trees for a regular expression",
		Long: `Search text files for lines matching a regular expression.

Directories are walked recursively. Hidden files and directories, backup
files, version control directories and common binary extensions are skipped
by default. Binary files are never searched; gzip-compressed text files are
decompressed on the fly. With no files, the current directory is searched.
A file named "-" reads standard input.

Default flags can be set in the GRIN_ARGS environment variable, and
persistent defaults in ~/.grin.yaml (or the file named by GRIN_CONFIG).
Flags on the command line win over both.

Examples:
  # Search the current directory tree
  grin 'def \w+_main'

  # Two lines of context, case-insensitive, only Python files
  grin -C 2 -i -I '*.py' todo

  # Search the files listed by find
  find . -name '*.go' -print0 | grin -0 -f - 'context\.Context'

  # Search only the comments of Python sources
  grin --transform python -c 'XXX|FIXME' src/`,
		Args:         cobra.MinimumNArgs(1),
		RunE:         runGrin,
		Version:      Version,
		SilenceUsage: true,
	}

	f := cmd.Flags()
	f.BoolP("ignore-case", "i", false, "Ignore case in the regex")
	f.IntP("after-context", "A", 0, "Number of lines of context to show after the match")
	f.IntP("before-context", "B", 0, "Number of lines of context to show before the match")
	f.IntP("context", "C", 0, "Number of lines of context to show on either side of the match")
	f.BoolP("line-number", "n", false, "Show the line numbers")
	f.BoolP("no-line-number", "N", false, "Do not show the line numbers")
	f.BoolP("with-filename", "H", false, "Show the filenames of files that match")
	f.Bool("without-filename", false, "Do not show the filenames of files that match")
	f.Bool("emacs", false, "Print results in \"file:line: text\" form for editors")
	f.BoolP("files-with-matches", "l", false, "Show only the names of files that match")
	f.StringP("include", "I", "", "Only search walked files whose basename matches this glob (default \"*\")")
	f.StringP("files-from-file", "f", "", "Read files to search from FILE, one per line; - for stdin")
	f.BoolP("null-separated", "0", false, "Names in --files-from-file are separated by NULs")
	f.String("color", "", "Color the output: auto, always or never")
	f.Bool("force-color", false, "Always color the output")
	f.Bool("no-color", false, "Never color the output")
	f.String("engine", "", "Regex engine: re2 (linear time) or regexp2 (backreferences, lookaround)")
	f.String("transform", "", "Transform text before searching: none, python, imports or markdown")
	f.BoolP("python-code", "p", false, "Keep non-string, non-comment Python code (python transform)")
	f.BoolP("comments", "c", false, "Keep Python comments (python transform)")
	f.BoolP("strings", "t", false, "Keep Python strings, especially docstrings (python transform)")
	f.Bool("warn-unreadable", false, "List paths that could not be read when the search ends")
	addSkipFlags(cmd, config.DefaultSkipExts)
	addConfigFlags(cmd)

	return cmd
}

// grinOverrides collects the grin flags that were set on the command line.
func grinOverrides(cmd *cobra.Command) config.Overrides {
	var o config.Overrides

	o.BeforeContext = intFlag(cmd, "before-context")
	o.AfterContext = intFlag(cmd, "after-context")
	if c := intFlag(cmd, "context"); c != nil {
		o.BeforeContext = c
		o.AfterContext = c
	}

	o.LineNumbers = pairFlag(cmd, "line-number", "no-line-number")
	o.Filenames = pairFlag(cmd, "with-filename", "without-filename")
	o.Emacs = boolFlag(cmd, "emacs")
	o.IgnoreCase = boolFlag(cmd, "ignore-case")
	o.Engine = stringFlag(cmd, "engine")
	o.Include = stringFlag(cmd, "include")
	o.LogLevel = stringFlag(cmd, "log-level")
	o.WarnUnreadable = boolFlag(cmd, "warn-unreadable")

	o.Color = stringFlag(cmd, "color")
	if v := boolFlag(cmd, "force-color"); v != nil && *v {
		always := config.ColorAlways
		o.Color = &always
	}
	if v := boolFlag(cmd, "no-color"); v != nil && *v {
		never := config.ColorNever
		o.Color = &never
	}

	o.PythonCode = boolFlag(cmd, "python-code")
	o.PythonComments = boolFlag(cmd, "comments")
	o.PythonStrings = boolFlag(cmd, "strings")
	o.Transform = stringFlag(cmd, "transform")
	if o.Transform == nil && (o.PythonCode != nil || o.PythonComments != nil || o.PythonStrings != nil) {
		python := "python"
		o.Transform = &python
	}

	skipOverrides(cmd, &o)
	return o
}

// runGrin implements the grin command logic
func runGrin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cfg.MergeWithFlags(grinOverrides(cmd))
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := newLogger(cmd, cfg.LogLevel)

	matcher, err := pattern.Compile(args[0], cfg.PatternOptions())
	if err != nil {
		return err
	}

	filesFrom, _ := cmd.Flags().GetString("files-from-file")
	nullSeparated, _ := cmd.Flags().GetBool("null-separated")
	inputs, err := fileutil.CollectInputs(fileutil.InputOptions{
		FilesFrom:     filesFrom,
		NullSeparated: nullSeparated,
		Args:          args[1:],
		Stdin:         cmd.InOrStdin(),
	})
	if err != nil {
		return err
	}

	filesOnly, _ := cmd.Flags().GetBool("files-with-matches")
	out := cmd.OutOrStdout()

	selector := cfg.Selector()
	selector.Stdin = cmd.InOrStdin()

	searcher, err := search.New(matcher, search.Options{
		Recognizer: cfg.RecognizerConfig(),
		Grep:       cfg.GrepOptions(useColor(cfg.Color, out), !filesOnly),
		Selector:   selector,
		Include:    cfg.Include,
	}, out, log)
	if err != nil {
		return err
	}

	log.LogDebug(fmt.Sprintf("searching %d input(s) with engine %s", len(inputs), cfg.Engine))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	stats, err := searcher.Run(ctx, inputs)
	if errors.Is(err, context.Canceled) {
		log.LogDebug("search interrupted")
		return nil
	}
	if err != nil {
		return err
	}

	if cfg.WarnUnreadable && len(stats.Unreadable) > 0 {
		w := display.WarnUnreadable(stats.Unreadable)
		w.Color = useColor(cfg.Color, cmd.ErrOrStderr())
		w.Display(cmd.ErrOrStderr())
	}
	return nil
}
