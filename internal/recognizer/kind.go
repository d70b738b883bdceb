// Package recognizer decides what a filesystem path is and whether a search
// should look inside it.
//
// A Recognizer classifies single paths (Classify, ClassifyFile,
// ClassifyDirectory) and walks directory trees (Walk), yielding every
// content-bearing file depth first. Classification never returns an error:
// permission problems, dangling links and corrupt gzip streams are folded
// into the Unreadable and Binary kinds.
package recognizer

// Kind is the classification outcome for a path.
type Kind int

const (
	// Text is a regular file whose sampled bytes are all text.
	Text Kind = iota
	// Binary is a regular file with non-text bytes in its sample.
	Binary
	// Gzip is a gzip-compressed file whose decompressed sample is text.
	Gzip
	// Directory is a directory that can be listed and entered.
	Directory
	// Link is a symlink skipped by configuration.
	Link
	// Unreadable is a path that cannot be opened, listed or resolved.
	Unreadable
	// Skip is a path excluded by configuration or by its file type.
	Skip
)

var kindNames = [...]string{
	Text:       "text",
	Binary:     "binary",
	Gzip:       "gzip",
	Directory:  "directory",
	Link:       "link",
	Unreadable: "unreadable",
	Skip:       "skip",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsContent reports whether the kind names an actual file the walker yields.
func (k Kind) IsContent() bool {
	return k == Text || k == Binary || k == Gzip
}
