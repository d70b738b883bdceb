package recognizer

import (
	"path/filepath"
	"strings"
)

// DefaultBinaryBytes is the number of bytes sampled from the head and the tail
// of a file to decide whether it is binary.
const DefaultBinaryBytes = 4096

// Config holds the exclusion rules and sniffing parameters for a Recognizer.
// A Recognizer copies its Config on construction, so later changes to the
// caller's value have no effect on a running walk.
type Config struct {
	// SkipHiddenFiles skips files whose basename starts with ".".
	SkipHiddenFiles bool
	// SkipHiddenDirs skips directories whose basename starts with "."
	// (the "." and ".." pseudo-entries are never skipped).
	SkipHiddenDirs bool
	// SkipBackupFiles skips files whose basename ends with "~".
	SkipBackupFiles bool
	// SkipDirs is a set of directory basenames to skip, e.g. "CVS".
	SkipDirs []string
	// SkipExts is a set of filename suffixes to skip. Entries may be plain
	// extensions (".pyc"), compound extensions (".tar.gz") or arbitrary
	// suffixes ("~", "#"). Matching is exact and case-sensitive.
	SkipExts []string
	// SkipSymlinkFiles reports symlinked files as Link.
	SkipSymlinkFiles bool
	// SkipSymlinkDirs reports symlinked directories as Link.
	SkipSymlinkDirs bool
	// BinaryBytes is the sample size used by the binary sniffer.
	BinaryBytes int
	// RespectIgnoreFiles prunes entries matched by .gitignore files found
	// while walking.
	RespectIgnoreFiles bool
}

// DefaultConfig returns the library defaults: nothing hidden is skipped,
// backups are skipped and symlinks are not followed.
func DefaultConfig() Config {
	return Config{
		SkipBackupFiles:  true,
		SkipSymlinkFiles: true,
		SkipSymlinkDirs:  true,
		BinaryBytes:      DefaultBinaryBytes,
	}
}

// extRules splits the configured suffixes into the ones a single extension
// lookup can answer and the ones that need a suffix scan. Extensions starting
// with ".~" ("notes.~1~") are editor backups and only skipped with backups.
type extRules struct {
	simple   map[string]struct{}
	endswith []string
	backups  bool
}

func newExtRules(exts []string, backups bool) extRules {
	rules := extRules{simple: make(map[string]struct{}), backups: backups}
	for _, ext := range exts {
		if ext == "" {
			continue
		}
		if filepath.Ext("foo.bar"+ext) == ext {
			rules.simple[ext] = struct{}{}
		} else {
			rules.endswith = append(rules.endswith, ext)
		}
	}
	return rules
}

// match reports whether name is excluded by either pass.
func (e extRules) match(name string) bool {
	ext := splitExt(name)
	if _, ok := e.simple[ext]; ok {
		return true
	}
	if e.backups && strings.HasPrefix(ext, ".~") {
		return true
	}
	for _, suffix := range e.endswith {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// splitExt returns the extension of a basename, ignoring leading dots so that
// ".bashrc" has no extension.
func splitExt(name string) string {
	trimmed := strings.TrimLeft(name, ".")
	if !strings.Contains(trimmed, ".") {
		return ""
	}
	return filepath.Ext(trimmed)
}
