package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/grin/internal/config"
	"github.com/harrison/grin/internal/search"
)

// NewGrindCommand creates the grind command, a find-like lister that walks
// trees the way grin does
func NewGrindCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grind [flags] [glob]",
		Short: "List files by glob, skipping what grin skips",
		Long: `List the files under one or more directories whose basename matches a
glob, applying grin's skip rules for hidden files, backups and directories.
Binary files are listed too; only build products and archives are skipped
by extension unless --skip-exts says otherwise.

The output can be fed back to grin:

  grind '*.py' -0 | grin -0 -f - 'import re'

Default flags can be set in the GRIND_ARGS environment variable.`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runGrind,
		Version:      Version,
		SilenceUsage: true,
	}

	cmd.Flags().StringSlice("dirs", []string{"."}, "Directories to start from")
	cmd.Flags().BoolP("null-separated", "0", false, "Print the filenames separated by NULs")
	addSkipFlags(cmd, config.DefaultListSkipExts)
	addConfigFlags(cmd)

	return cmd
}

// runGrind implements the grind command logic
func runGrind(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cfg.UseListDefaults()

	var o config.Overrides
	skipOverrides(cmd, &o)
	o.LogLevel = stringFlag(cmd, "log-level")
	cfg.MergeWithFlags(o)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	glob := "*"
	if len(args) == 1 {
		glob = args[0]
	}
	dirs, _ := cmd.Flags().GetStringSlice("dirs")
	nullSeparated, _ := cmd.Flags().GetBool("null-separated")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log := newLogger(cmd, cfg.LogLevel)
	_, err = search.List(ctx, dirs, search.ListOptions{
		Recognizer:    cfg.RecognizerConfig(),
		Glob:          glob,
		NullSeparated: nullSeparated,
	}, cmd.OutOrStdout(), log)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
