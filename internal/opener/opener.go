// Package opener provides the strategies used to turn a path into the byte
// stream that gets grepped: plain reads, gzip decompression and source
// transformations that keep only part of a file.
package opener

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// StdinName is the path that stands for standard input.
const StdinName = "-"

// Opener opens a path for reading.
type Opener interface {
	Open(path string) (io.ReadCloser, error)
}

// OpenerFunc adapts an ordinary function to the Opener interface.
type OpenerFunc func(path string) (io.ReadCloser, error)

// Open calls f(path).
func (f OpenerFunc) Open(path string) (io.ReadCloser, error) {
	return f(path)
}

// Plain opens files as they are on disk. The path "-" reads Stdin, or
// os.Stdin when Stdin is nil; closing it does not close the underlying reader.
type Plain struct {
	Stdin io.Reader
}

// Open implements Opener.
func (p Plain) Open(path string) (io.ReadCloser, error) {
	if path == StdinName {
		if p.Stdin != nil {
			return io.NopCloser(p.Stdin), nil
		}
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// Gzip decompresses gzip files while they are read.
type Gzip struct {
	Stdin io.Reader
}

// Open implements Opener.
func (g Gzip) Open(path string) (io.ReadCloser, error) {
	f, err := Plain{Stdin: g.Stdin}.Open(path)
	if err != nil {
		return nil, err
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("gzip header: %w", err)
	}
	return &gzipReadCloser{Reader: zr, file: f}, nil
}

type gzipReadCloser struct {
	*gzip.Reader
	file io.Closer
}

func (r *gzipReadCloser) Close() error {
	zerr := r.Reader.Close()
	ferr := r.file.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}

// readAll opens path with src, or Plain when src is nil, and returns its
// full contents.
func readAll(src Opener, path string) ([]byte, error) {
	if src == nil {
		src = Plain{}
	}
	rc, err := src.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// blank returns a copy of src with every byte that is not ASCII whitespace
// replaced by a space. Line structure and column positions are preserved.
func blank(src []byte) []byte {
	out := make([]byte, len(src))
	for i, c := range src {
		if isSpace(c) {
			out[i] = c
		} else {
			out[i] = ' '
		}
	}
	return out
}

// blankRange overwrites out[start:end] with spaces, leaving whitespace alone.
func blankRange(out []byte, start, end int) {
	for i := start; i < end; i++ {
		if !isSpace(out[i]) {
			out[i] = ' '
		}
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
