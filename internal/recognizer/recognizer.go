package recognizer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// GzipMagic is the two-byte header every gzip stream starts with.
var GzipMagic = []byte{0x1f, 0x8b}

// textBytes marks the bytes file(1) considers text: BEL, BS, TAB, LF, FF,
// CR, ESC and everything from 0x20 upwards.
var textBytes = func() [256]bool {
	var table [256]bool
	for _, b := range []byte{7, 8, 9, 10, 12, 13, 27} {
		table[b] = true
	}
	for b := 0x20; b < 0x100; b++ {
		table[b] = true
	}
	return table
}()

// IsBinaryBytes reports whether sample contains any byte outside the text
// allowlist.
func IsBinaryBytes(sample []byte) bool {
	for _, b := range sample {
		if !textBytes[b] {
			return true
		}
	}
	return false
}

// Recognizer classifies paths according to a fixed Config.
// It keeps no per-call state and is safe for concurrent use.
type Recognizer struct {
	cfg      Config
	skipDirs map[string]struct{}
	exts     extRules
	onError  func(path string, err error)
	onPrune  func(path string, kind Kind)
}

// Option customises a Recognizer.
type Option func(*Recognizer)

// WithErrorHandler registers a callback for directories that were classified
// as walkable but could not be listed.
func WithErrorHandler(fn func(path string, err error)) Option {
	return func(r *Recognizer) {
		r.onError = fn
	}
}

// WithPruneHandler registers a callback for every path the walker passes
// over (skip, link, unreadable).
func WithPruneHandler(fn func(path string, kind Kind)) Option {
	return func(r *Recognizer) {
		r.onPrune = fn
	}
}

// New creates a Recognizer. A non-positive BinaryBytes falls back to
// DefaultBinaryBytes.
func New(cfg Config, opts ...Option) *Recognizer {
	if cfg.BinaryBytes <= 0 {
		cfg.BinaryBytes = DefaultBinaryBytes
	}
	cfg.SkipDirs = append([]string(nil), cfg.SkipDirs...)
	cfg.SkipExts = append([]string(nil), cfg.SkipExts...)

	skipDirs := make(map[string]struct{}, len(cfg.SkipDirs))
	for _, dir := range cfg.SkipDirs {
		if dir != "" {
			skipDirs[dir] = struct{}{}
		}
	}

	r := &Recognizer{
		cfg:      cfg,
		skipDirs: skipDirs,
		exts:     newExtRules(cfg.SkipExts, cfg.SkipBackupFiles),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns a copy of the configuration in use.
func (r *Recognizer) Config() Config {
	cfg := r.cfg
	cfg.SkipDirs = append([]string(nil), r.cfg.SkipDirs...)
	cfg.SkipExts = append([]string(nil), r.cfg.SkipExts...)
	return cfg
}

// Classify determines what kind of thing path is. Regular files and
// directories are dispatched to ClassifyFile and ClassifyDirectory; pipes,
// sockets and devices are skipped since opening them may block. A dangling
// symlink goes through ClassifyFile so the symlink rule sees it first.
func (r *Recognizer) Classify(path string) Kind {
	info, err := os.Stat(path)
	if err != nil {
		if isSymlink(path) {
			return r.ClassifyFile(path)
		}
		return Unreadable
	}
	switch mode := info.Mode(); {
	case mode.IsRegular():
		return r.ClassifyFile(path)
	case mode.IsDir():
		return r.ClassifyDirectory(path)
	default:
		return Skip
	}
}

// ClassifyDirectory determines what to do with a directory.
func (r *Recognizer) ClassifyDirectory(path string) Kind {
	base := filepath.Base(path)
	if r.cfg.SkipHiddenDirs && strings.HasPrefix(base, ".") && base != "." && base != ".." {
		return Skip
	}
	if r.cfg.SkipSymlinkDirs && isSymlink(path) {
		return Link
	}
	if _, ok := r.skipDirs[base]; ok {
		return Skip
	}

	// Permissions are checked on the link target.
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		return Unreadable
	}
	if canAccess(real, accessRead|accessExec) {
		return Directory
	}
	return Unreadable
}

// ClassifyFile determines what to do with a file.
func (r *Recognizer) ClassifyFile(path string) Kind {
	base := filepath.Base(path)
	if r.cfg.SkipHiddenFiles && strings.HasPrefix(base, ".") {
		return Skip
	}
	if r.cfg.SkipBackupFiles && strings.HasSuffix(base, "~") {
		return Skip
	}
	if r.cfg.SkipSymlinkFiles && isSymlink(path) {
		return Link
	}
	if r.exts.match(base) {
		return Skip
	}

	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		return Unreadable
	}
	if !canAccess(real, accessRead) {
		return Unreadable
	}

	binary, err := r.IsBinary(real)
	if err != nil {
		return Unreadable
	}
	if !binary {
		return Text
	}
	gzipped, err := r.IsGzippedText(real)
	if err != nil {
		return Unreadable
	}
	if gzipped {
		return Gzip
	}
	return Binary
}

// IsBinary samples the head and, for files longer than the sample size, the
// tail of path and reports whether the combined sample contains binary bytes.
func (r *Recognizer) IsBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	n := r.cfg.BinaryBytes
	head, err := readSample(f, n)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if len(head) < n {
		return IsBinaryBytes(head), nil
	}

	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() <= int64(n) {
		return IsBinaryBytes(head), nil
	}

	tail := make([]byte, n)
	read, err := f.ReadAt(tail, info.Size()-int64(n))
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	return IsBinaryBytes(head) || IsBinaryBytes(tail[:read]), nil
}

// IsGzippedText reports whether path is a gzip stream whose decompressed head
// is text. A stream that fails to decompress is not gzipped text; only
// failures to open or read the file itself are returned as errors.
func (r *Recognizer) IsGzippedText(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	magic, err := readSample(f, len(GzipMagic))
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if !bytes.Equal(magic, GzipMagic) {
		return false, nil
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return false, fmt.Errorf("seek %s: %w", path, err)
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		return false, nil
	}
	defer zr.Close()

	sample, err := readSample(zr, r.cfg.BinaryBytes)
	if err != nil {
		return false, nil
	}
	return !IsBinaryBytes(sample), nil
}

// readSample reads up to n bytes. A short stream is not an error.
func readSample(rd io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(rd, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return buf[:read], nil
}

func isSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}
