package recognizer

import (
	"iter"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

const ignoreFileName = ".gitignore"

// ignoreScope is a compiled ignore file and the directory it applies to.
type ignoreScope struct {
	dir string
	gi  *ignore.GitIgnore
}

// Walk returns a depth-first sequence of every content-bearing file (Text,
// Binary, Gzip) under start. A start path that is itself a file is yielded
// once and never recursed into. Skip, Link and Unreadable paths are pruned
// silently, apart from the optional prune handler.
//
// The sequence is lazy: breaking out of the range loop stops the traversal.
// Symlinked directories are only entered when SkipSymlinkDirs is off, and
// cycles through them are the caller's problem.
func (r *Recognizer) Walk(start string) iter.Seq2[string, Kind] {
	return func(yield func(string, Kind) bool) {
		r.walk(start, r.Classify(start), nil, yield)
	}
}

// walk handles one already-classified path. It returns false once the
// consumer has stopped.
func (r *Recognizer) walk(path string, kind Kind, scopes []ignoreScope, yield func(string, Kind) bool) bool {
	switch {
	case kind.IsContent():
		return yield(path, kind)
	case kind == Directory:
		return r.walkDir(path, scopes, yield)
	default:
		if r.onPrune != nil {
			r.onPrune(path, kind)
		}
		return true
	}
}

func (r *Recognizer) walkDir(dir string, scopes []ignoreScope, yield func(string, Kind) bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if r.onError != nil {
			r.onError(dir, err)
		}
		return true
	}

	if r.cfg.RespectIgnoreFiles {
		if gi := loadIgnoreFile(dir); gi != nil {
			// Full slice expression so sibling directories never share the appended scope.
			scopes = append(scopes[:len(scopes):len(scopes)], ignoreScope{dir: dir, gi: gi})
		}
	}

	for _, entry := range entries {
		child := joinPath(dir, entry.Name())
		kind := Skip
		if !ignored(scopes, child, entry.IsDir()) {
			kind = r.Classify(child)
		}
		if !r.walk(child, kind, scopes, yield) {
			return false
		}
	}
	return true
}

// joinPath appends name to dir without cleaning dir, so a walk started at
// "." yields "./name" paths.
func joinPath(dir, name string) string {
	if strings.HasSuffix(dir, string(os.PathSeparator)) {
		return dir + name
	}
	return dir + string(os.PathSeparator) + name
}

func loadIgnoreFile(dir string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(dir, ignoreFileName))
	if err != nil {
		return nil
	}
	return gi
}

func ignored(scopes []ignoreScope, path string, isDir bool) bool {
	for _, scope := range scopes {
		rel, err := filepath.Rel(scope.dir, path)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		if scope.gi.MatchesPath(rel) {
			return true
		}
		if isDir && scope.gi.MatchesPath(rel+"/") {
			return true
		}
	}
	return false
}
