package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/grin/internal/config"
)

// addSkipFlags registers the walk exclusion flags shared by grin and grind.
// exts is the default shown for --skip-exts.
func addSkipFlags(cmd *cobra.Command, exts []string) {
	f := cmd.Flags()
	f.BoolP("no-skip-hidden-files", "s", false, "Do not skip .hidden files")
	f.BoolP("no-skip-hidden-dirs", "S", false, "Do not skip .hidden directories")
	f.BoolP("no-skip-backup-files", "b", false, "Do not skip backup~ files")
	f.StringP("skip-dirs", "d", strings.Join(config.DefaultSkipDirs, ","), "Comma-separated list of directory names to skip")
	f.BoolP("no-skip-dirs", "D", false, "Do not skip any directories")
	f.StringP("skip-exts", "e", strings.Join(exts, ","), "Comma-separated list of file extensions to skip")
	f.BoolP("no-skip-exts", "E", false, "Do not skip any file extensions")
	f.Bool("follow", false, "Follow symlinks to directories and files")
	f.Bool("gitignore", false, "Skip paths matched by .gitignore files")
	f.Int("binary-bytes", 0, "Number of bytes sniffed from each end of a file to detect binaries")
}

// skipOverrides converts the changed skip flags into configuration overrides.
func skipOverrides(cmd *cobra.Command, o *config.Overrides) {
	o.SkipHiddenFiles = negated(cmd, "no-skip-hidden-files")
	o.SkipHiddenDirs = negated(cmd, "no-skip-hidden-dirs")
	o.SkipBackups = negated(cmd, "no-skip-backup-files")
	o.SkipDirs = listFlag(cmd, "skip-dirs", "no-skip-dirs")
	o.SkipExts = listFlag(cmd, "skip-exts", "no-skip-exts")
	o.SkipSymlinks = negated(cmd, "follow")
	o.Gitignore = boolFlag(cmd, "gitignore")
	o.BinaryBytes = intFlag(cmd, "binary-bytes")
}

// intFlag returns the flag value if it was set on the command line.
func intFlag(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

// boolFlag returns the flag value if it was set on the command line.
func boolFlag(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

// stringFlag returns the flag value if it was set on the command line.
func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// negated returns the inverse of a "--no-X" style flag if it was set.
func negated(cmd *cobra.Command, name string) *bool {
	v := boolFlag(cmd, name)
	if v == nil {
		return nil
	}
	inv := !*v
	return &inv
}

// pairFlag resolves a --X/--no-X pair; the negative flag wins when both are set.
func pairFlag(cmd *cobra.Command, on, off string) *bool {
	if v := negated(cmd, off); v != nil && !*v {
		return v
	}
	return boolFlag(cmd, on)
}

// listFlag returns a comma-separated flag as a list, or an empty list when
// the clearing flag is set.
func listFlag(cmd *cobra.Command, name, clear string) *[]string {
	if v := boolFlag(cmd, clear); v != nil && *v {
		empty := []string{}
		return &empty
	}
	s := stringFlag(cmd, name)
	if s == nil {
		return nil
	}
	list := splitList(*s)
	return &list
}

// splitList splits a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	list := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
